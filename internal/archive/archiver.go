// Package archive builds the single-file text archive of a project tree.
//
// An Archiver scans the project root with fileutil.Scan, then writes one
// section per configured extension in declared order. Each section lists its
// files sorted by path, each file framed by a "FILE:" header and separators.
// Sections without files are omitted entirely.
//
// Unreadable files never abort a run: an "Error reading <path>: <reason>"
// notice is written where the content would have been and the failure is
// reported in the result. Only failures to scan the root or to create and
// write the output are fatal.
package archive

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/codearchive/internal/filelock"
	"github.com/harrison/codearchive/internal/fileutil"
	"github.com/harrison/codearchive/internal/models"
)

// Logger receives progress events while an archive is built.
type Logger interface {
	LogScanComplete(root string, files int)
	LogSectionStart(section models.Section, files int)
	LogFileArchived(rec models.FileRecord, bytes int)
	LogFileError(ferr *models.FileError)
	LogWalkError(err error)
	LogSummary(result *models.ArchiveResult)
}

// Options describes one archive run.
type Options struct {
	Root         string           // Project root to scan
	Output       string           // Archive path; relative paths resolve against the working directory
	Title        string           // First line of the archive
	Sections     []models.Section // Section order and headings
	Extensions   []string         // Allowed file extensions
	ExcludeDirs  []string         // Directory names never descended into
	ExcludeFiles []string         // Exact file names to skip
}

// Validate checks that the options describe a runnable archive.
func (o Options) Validate() error {
	if o.Root == "" {
		return errors.New("root directory is required")
	}
	if o.Output == "" {
		return errors.New("output path is required")
	}
	if len(o.Sections) == 0 {
		return errors.New("at least one section is required")
	}
	return nil
}

// Archiver builds archives. Its zero value is not usable; use New.
type Archiver struct {
	opts   Options
	logger Logger
	now    func() time.Time
	read   ReadFunc
}

// New returns an Archiver for opts. A nil logger discards progress events.
func New(opts Options, logger Logger) *Archiver {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Archiver{
		opts:   opts,
		logger: logger,
		now:    time.Now,
		read:   ReadSource,
	}
}

// SetClock overrides the time source used for the header timestamp and duration.
func (a *Archiver) SetClock(now func() time.Time) {
	a.now = now
}

// Build scans the project and writes the archive.
// The archive replaces Output only after it was written completely.
func (a *Archiver) Build() (*models.ArchiveResult, error) {
	if err := a.opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid archive options: %w", err)
	}

	start := a.now()

	output, err := filepath.Abs(a.opts.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output path %s: %w", a.opts.Output, err)
	}

	scan, err := fileutil.Scan(a.opts.Root, fileutil.ScanOptions{
		Extensions:   a.opts.Extensions,
		ExcludeDirs:  a.opts.ExcludeDirs,
		ExcludeFiles: a.opts.ExcludeFiles,
		IgnorePaths:  []string{output, filelock.LockPath(output)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", a.opts.Root, err)
	}
	for _, werr := range scan.Errors {
		a.logger.LogWalkError(werr)
	}
	a.logger.LogScanComplete(a.opts.Root, countSectioned(scan.Files, a.opts.Sections))

	out, err := filelock.Create(output)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Abort()

	result := &models.ArchiveResult{
		RunID:      uuid.New().String(),
		Root:       a.opts.Root,
		Output:     output,
		WalkErrors: scan.Errors,
	}

	buf := bufio.NewWriter(out)
	w := NewWriter(buf)
	w.read = a.read
	w.WriteHeader(a.opts.Title, start)

	for _, section := range a.opts.Sections {
		matched := SortRecords(models.FilterBySection(scan.Files, section))
		if len(matched) == 0 {
			continue
		}

		a.logger.LogSectionStart(section, len(matched))
		w.WriteSectionHeader(section)
		result.Sections++

		for _, rec := range matched {
			n, ferr := w.WriteFile(rec)
			result.Files++
			result.Bytes += int64(n)
			if ferr != nil {
				result.FileErrors = append(result.FileErrors, ferr)
				a.logger.LogFileError(ferr)
				continue
			}
			a.logger.LogFileArchived(rec, n)
		}

		if w.Err() != nil {
			break
		}
	}

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("failed to write archive %s: %w", out.Name(), err)
	}
	if err := buf.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write archive %s: %w", out.Name(), err)
	}
	if err := out.Commit(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive %s: %w", out.Name(), err)
	}

	result.Duration = a.now().Sub(start)
	a.logger.LogSummary(result)
	return result, nil
}

// countSectioned counts the records that belong to some section.
func countSectioned(records []models.FileRecord, sections []models.Section) int {
	exts := make(map[string]bool, len(sections))
	for _, s := range sections {
		exts[s.Extension] = true
	}
	n := 0
	for _, r := range records {
		if exts[r.Extension] {
			n++
		}
	}
	return n
}

type nopLogger struct{}

func (nopLogger) LogScanComplete(string, int)            {}
func (nopLogger) LogSectionStart(models.Section, int)    {}
func (nopLogger) LogFileArchived(models.FileRecord, int) {}
func (nopLogger) LogFileError(*models.FileError)         {}
func (nopLogger) LogWalkError(error)                     {}
func (nopLogger) LogSummary(*models.ArchiveResult)       {}
