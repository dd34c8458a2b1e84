// Package models defines the value types shared by the scanner, the archive
// writer and the CLI.
package models

import (
	"path/filepath"
	"strings"
)

// FileRecord is a file selected for archiving.
type FileRecord struct {
	Path      string // Root-joined path as it appears in the archive
	Extension string // Extension including the leading dot, e.g. ".jsx"
}

// Section groups archived files sharing one extension under a heading.
// The order of a []Section is the order sections appear in the archive.
type Section struct {
	Extension string `yaml:"extension" json:"extension"`
	Name      string `yaml:"name" json:"name"`
}

// Extension returns the extension of a file name, including the dot.
// Leading dots of the base name are not treated as an extension separator,
// so ".env" has no extension while "app.env" has ".env".
func Extension(name string) string {
	base := filepath.Base(name)
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return ""
	}
	return trimmed[idx:]
}

// FilterBySection returns the records whose extension matches the section.
func FilterBySection(records []FileRecord, section Section) []FileRecord {
	var matched []FileRecord
	for _, r := range records {
		if r.Extension == section.Extension {
			matched = append(matched, r)
		}
	}
	return matched
}
