package logger

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harrison/codearchive/internal/models"
)

// colorScheme defines consistent colors for summary metrics.
// Green: success/positive metrics
// Red: failure/error metrics
// Yellow: warning metrics
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	header  *color.Color
}

// newColorScheme creates the standard color scheme for metrics.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: newColor(color.FgGreen),
		fail:    newColor(color.FgRed),
		warn:    newColor(color.FgYellow),
		label:   newColor(color.FgCyan),
		header:  newColor(color.Bold),
	}
}

// newColor returns a color that is applied regardless of color.NoColor,
// which only describes stdout. Callers decide per writer.
func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// formatSummaryLines renders the archive summary, one metric per line.
// A nil scheme produces plain text.
func formatSummaryLines(result *models.ArchiveResult, scheme *colorScheme) []string {
	metric := func(label string, value interface{}, c *color.Color) string {
		if scheme == nil {
			return fmt.Sprintf("%s: %v", label, value)
		}
		v := fmt.Sprintf("%v", value)
		if c != nil {
			v = c.Sprint(v)
		}
		return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), v)
	}
	pick := func(cond bool, on func(*colorScheme) *color.Color) *color.Color {
		if scheme == nil || !cond {
			return nil
		}
		return on(scheme)
	}

	header := "=== Archive Summary ==="
	if scheme != nil {
		header = scheme.header.Sprint(header)
	}

	unreadable := len(result.FileErrors)
	lines := []string{
		header,
		metric("Output", result.Output, nil),
		metric("Root", result.Root, nil),
		metric("Sections", result.Sections, nil),
		metric("Files archived", result.Archived(), pick(result.Archived() > 0, func(s *colorScheme) *color.Color { return s.success })),
		metric("Unreadable files", unreadable, pick(unreadable > 0, func(s *colorScheme) *color.Color { return s.fail })),
	}
	if len(result.WalkErrors) > 0 {
		lines = append(lines, metric("Scan errors", len(result.WalkErrors), pick(true, func(s *colorScheme) *color.Color { return s.warn })))
	}
	lines = append(lines,
		metric("Size", formatBytes(result.Bytes), nil),
		metric("Duration", formatDuration(result.Duration), nil),
	)
	return lines
}

// formatBytes renders a byte count in SI units, e.g. "1.2 kB".
func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
