package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/codearchive/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, paint(IsTerminal(out), ansiYellow, b.String()))
}

// WarnUnreadableFiles creates a warning listing files whose content was
// replaced by an error notice in the archive
func WarnUnreadableFiles(root string, errs []*models.FileError) Warning {
	files := make([]string, len(errs))
	for i, ferr := range errs {
		files[i] = fmt.Sprintf("%s (%v)", ShortPath(root, ferr.Path), ferr.Class)
	}

	title := "1 file could not be read"
	if len(errs) != 1 {
		title = fmt.Sprintf("%d files could not be read", len(errs))
	}

	return Warning{
		Title:      title,
		Message:    "The archive contains an \"Error reading\" notice in place of their content",
		Files:      files,
		Suggestion: "Check file permissions and encoding, or add the files to exclude_files",
	}
}
