// Package display provides terminal output for archive runs: per-file progress
// lines and warnings about files that could not be archived.
//
// ANSI colours are emitted only when the writer is a terminal, so output
// captured into files or buffers stays plain.
//
// # Progress Indicators
//
//	progress := display.NewProgressIndicator(os.Stderr, root, total)
//	progress.Start()
//	for _, rec := range records {
//	    progress.Step(rec.Path)
//	}
//	progress.Complete()
//
// # Warning Messages
//
//	warning := display.WarnUnreadableFiles(root, result.FileErrors)
//	warning.Display(os.Stderr)
package display

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
	ansiReset  = "\x1b[0m"
)

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ShortPath returns path relative to root when path lies under it,
// otherwise path unchanged.
func ShortPath(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return code + s + ansiReset
}
