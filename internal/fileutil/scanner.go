package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harrison/codearchive/internal/models"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is the set of file extensions to include (e.g., ".jsx", ".md").
	// Matching is exact and case-sensitive.
	Extensions []string
	// ExcludeDirs is a list of directory names whose subtrees are never visited
	ExcludeDirs []string
	// ExcludeFiles is a list of exact file names to skip
	ExcludeFiles []string
	// IgnorePaths is a list of absolute paths to skip (e.g., the archive being written)
	IgnorePaths []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the matched files in walk order
	Files []models.FileRecord
	// Errors contains any errors encountered during scanning
	Errors []error
}

// Scan walks root and collects every file accepted by opts.
// Paths are root joined with the path relative to it.
func Scan(root string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	result := &ScanResult{
		Files:  make([]models.FileRecord, 0),
		Errors: make([]error, 0),
	}

	extMap := toSet(opts.Extensions)
	excludeDirs := toSet(opts.ExcludeDirs)
	excludeFiles := toSet(opts.ExcludeFiles)

	ignore := make(map[string]bool, len(opts.IgnorePaths))
	for _, p := range opts.IgnorePaths {
		if abs, err := filepath.Abs(p); err == nil {
			ignore[abs] = true
		}
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if excludeDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if excludeFiles[name] {
			return nil
		}

		ext := models.Extension(name)
		if !extMap[ext] {
			return nil
		}

		// Symlinked directories are reported as non-directories by WalkDir
		// and must not be read as files.
		if d.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil && target.IsDir() {
				return nil
			}
		}

		if len(ignore) > 0 {
			if abs, err := filepath.Abs(path); err == nil && ignore[abs] {
				return nil
			}
		}

		result.Files = append(result.Files, models.FileRecord{Path: path, Extension: ext})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
