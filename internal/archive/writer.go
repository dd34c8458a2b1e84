package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harrison/codearchive/internal/models"
)

// TimestampLayout is the layout of the "Generated on" header line.
const TimestampLayout = "2006-01-02 15:04:05"

const separatorWidth = 50

var (
	heavySeparator = strings.Repeat("=", separatorWidth)
	lightSeparator = strings.Repeat("-", separatorWidth)
)

// ReadFunc reads the content of a source file.
type ReadFunc func(path string) ([]byte, error)

// Writer renders the archive text format to an io.Writer.
// The first write error is sticky: later calls do nothing and Err reports it.
type Writer struct {
	w    io.Writer
	read ReadFunc
	err  error
}

// NewWriter returns a Writer that reads sources with ReadSource.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, read: ReadSource}
}

// Err returns the first error encountered while writing to the underlying writer.
func (w *Writer) Err() error {
	return w.err
}

// WriteHeader writes the document title and generation timestamp.
func (w *Writer) WriteHeader(title string, generated time.Time) {
	w.printf("%s\n", title)
	w.printf("Generated on: %s\n", generated.Format(TimestampLayout))
	w.printf("%s\n\n", heavySeparator)
}

// WriteSectionHeader writes the heading that opens a section.
func (w *Writer) WriteSectionHeader(section models.Section) {
	w.printf("\n%s\n", section.Name)
	w.printf("%s\n\n", heavySeparator)
}

// WriteFile writes one file block. If the source cannot be read, an inline
// "Error reading" notice takes the place of its content and the classified
// error is returned. The int result is the number of content bytes copied.
func (w *Writer) WriteFile(rec models.FileRecord) (int, *models.FileError) {
	content, err := w.read(rec.Path)

	w.printf("FILE: %s\n", rec.Path)
	w.printf("%s\n\n", lightSeparator)

	var ferr *models.FileError
	if err != nil {
		ferr = models.NewFileError(rec.Path, err)
		w.printf("Error reading %s: %v\n\n", rec.Path, err)
		content = nil
	} else {
		w.write(content)
		w.printf("\n\n")
	}

	w.printf("%s\n\n", heavySeparator)
	return len(content), ferr
}

// SortRecords sorts records by path in ascending byte order, in place,
// and returns them.
func SortRecords(records []models.FileRecord) []models.FileRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
	return records
}

func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

// ReadSource reads a text file, rejecting content that is not valid UTF-8.
// Line endings are normalized to "\n".
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w at byte offset %d", models.ErrEncoding, invalidOffset(data))
	}

	if bytes.IndexByte(data, '\r') >= 0 {
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	}
	return data, nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}
