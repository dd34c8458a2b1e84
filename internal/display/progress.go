package display

import (
	"fmt"
	"io"
)

// ProgressIndicator prints one line per archived file
type ProgressIndicator struct {
	writer     io.Writer
	root       string
	totalFiles int
	current    int
	archived   int
	color      bool
}

// NewProgressIndicator creates a new progress indicator.
// Paths are shown relative to root.
func NewProgressIndicator(w io.Writer, root string, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		root:       root,
		totalFiles: total,
		color:      IsTerminal(w),
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Archiving %d files:\n", p.totalFiles)
}

// Step displays progress for an archived file: [N/Total] path
func (p *ProgressIndicator) Step(path string) {
	p.current++
	p.archived++
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.totalFiles, ShortPath(p.root, path))
	fmt.Fprintln(p.writer, paint(p.color, ansiCyan, line))
}

// StepFailed displays progress for a file that could not be read
func (p *ProgressIndicator) StepFailed(path string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s (unreadable)", p.current, p.totalFiles, ShortPath(p.root, path))
	fmt.Fprintln(p.writer, paint(p.color, ansiYellow, line))
}

// Complete displays how many files made it into the archive
func (p *ProgressIndicator) Complete() {
	mark := paint(p.color, ansiGreen, "✓")
	if failed := p.current - p.archived; failed > 0 {
		mark = paint(p.color, ansiYellow, "!")
		fmt.Fprintf(p.writer, "%s Archived %d of %d files, %d unreadable\n", mark, p.archived, p.totalFiles, failed)
		return
	}
	fmt.Fprintf(p.writer, "%s Archived %d of %d files\n", mark, p.archived, p.totalFiles)
}
