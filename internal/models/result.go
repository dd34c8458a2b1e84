package models

import "time"

// ArchiveResult summarizes a single archive run
type ArchiveResult struct {
	RunID      string        // Unique ID of the run, used in log output
	Root       string        // Project root that was scanned
	Output     string        // Absolute path of the written archive
	Sections   int           // Number of non-empty sections written
	Files      int           // Number of files written, including unreadable ones
	Bytes      int64         // Bytes of source content copied into the archive
	FileErrors []*FileError  // Files that could not be read
	WalkErrors []error       // Non-fatal errors encountered while scanning
	Duration   time.Duration // Total time taken
}

// Archived returns the number of files whose content made it into the archive.
func (r *ArchiveResult) Archived() int {
	return r.Files - len(r.FileErrors)
}

// HasWarnings reports whether the run completed with per-file or scan problems.
func (r *ArchiveResult) HasWarnings() bool {
	return len(r.FileErrors) > 0 || len(r.WalkErrors) > 0
}
