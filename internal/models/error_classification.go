package models

import (
	"errors"
	"io/fs"
)

// Classes of per-file read failures. A *FileError matches exactly one of them
// through errors.Is.
var (
	ErrNotFound   = errors.New("file not found")
	ErrPermission = errors.New("permission denied")
	ErrEncoding   = errors.New("invalid UTF-8 encoding")
	ErrUnreadable = errors.New("file unreadable")
)

// FileError records a source file that could not be copied into the archive.
// It never aborts a run; the message is written inline in place of the content.
type FileError struct {
	Path  string // Path as it appears in the archive
	Class error  // One of ErrNotFound, ErrPermission, ErrEncoding, ErrUnreadable
	Err   error  // Underlying error
}

// NewFileError classifies err and wraps it with the file path.
func NewFileError(path string, err error) *FileError {
	return &FileError{
		Path:  path,
		Class: ClassifyReadError(err),
		Err:   err,
	}
}

// Error returns the underlying error message.
func (e *FileError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the class of this error.
func (e *FileError) Is(target error) bool {
	return target == e.Class
}

// ClassifyReadError maps an error returned while reading a source file to
// one of the read failure classes.
func ClassifyReadError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrEncoding):
		return ErrEncoding
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	default:
		return ErrUnreadable
	}
}
