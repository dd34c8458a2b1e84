// Package filelock provides file locking and atomic write operations so that
// concurrent archive runs never interleave output or leave a torn file behind.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Create when another process is writing the same file.
var ErrLocked = errors.New("file is locked by another process")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock acquires an exclusive lock on the file, blocking until the lock is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held elsewhere.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// LockPath returns the lock file used to guard writes to path.
// The lock file is left in place after unlocking so every process locks the
// same inode.
func LockPath(path string) string {
	return path + ".lock"
}

// AtomicWrite writes data to a file atomically using a temp file and rename strategy.
// Readers never see partial writes, even if the write is interrupted.
func AtomicWrite(path string, data []byte) error {
	f, err := createTemp(path)
	if err != nil {
		return err
	}
	if _, err := f.file.Write(data); err != nil {
		f.abort()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	return f.commit()
}

// LockAndWrite acquires a lock, performs an atomic write, and releases the lock.
// The lock path is derived by appending ".lock" to the target path.
func LockAndWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	lock := NewFileLock(LockPath(path))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	return AtomicWrite(path, data)
}

// AtomicFile streams content into a temp file next to its target and renames
// it over the target on Commit. An exclusive lock on the target's lock file is
// held from Create until Commit or Abort.
type AtomicFile struct {
	temp *tempFile
	lock *FileLock
	path string
	done bool
}

// Create locks path and opens a temp file in the same directory for writing.
// Returns ErrLocked if another process holds the lock.
func Create(path string) (*AtomicFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	lock := NewFileLock(LockPath(path))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	temp, err := createTemp(path)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	return &AtomicFile{temp: temp, lock: lock, path: path}, nil
}

// Name returns the target path.
func (f *AtomicFile) Name() string {
	return f.path
}

// Write appends p to the temp file.
func (f *AtomicFile) Write(p []byte) (int, error) {
	if f.done {
		return 0, fmt.Errorf("write to %s after close", f.path)
	}
	return f.temp.file.Write(p)
}

// Commit moves the written content into place and releases the lock.
func (f *AtomicFile) Commit() error {
	if f.done {
		return fmt.Errorf("%s already closed", f.path)
	}
	f.done = true
	defer f.lock.Unlock()
	return f.temp.commit()
}

// Abort discards the written content and releases the lock.
// Calling Abort after Commit is a no-op, so it is safe to defer.
func (f *AtomicFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	f.temp.abort()
	return f.lock.Unlock()
}

type tempFile struct {
	file   *os.File
	target string
}

// createTemp creates a temporary file in the same directory as target so the
// final rename stays on one filesystem.
func createTemp(target string) (*tempFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	return &tempFile{file: file, target: target}, nil
}

func (t *tempFile) commit() error {
	tempPath := t.file.Name()

	if err := t.file.Sync(); err != nil {
		t.abort()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := t.file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, t.target); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file to %s: %w", t.target, err)
	}
	return nil
}

func (t *tempFile) abort() {
	t.file.Close()
	os.Remove(t.file.Name())
}
