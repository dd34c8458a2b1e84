package display

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestNewProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, "/proj", 3)

	if pi == nil {
		t.Fatal("NewProgressIndicator() returned nil")
	}
	if pi.totalFiles != 3 {
		t.Errorf("totalFiles = %d, want 3", pi.totalFiles)
	}
	if pi.current != 0 {
		t.Errorf("current = %d, want 0", pi.current)
	}
	if pi.color {
		t.Error("color should be disabled for buffers")
	}
}

func TestProgressIndicator_Sequence(t *testing.T) {
	var buf bytes.Buffer
	root := filepath.Join(string(filepath.Separator), "proj")
	pi := NewProgressIndicator(&buf, root, 2)

	pi.Start()
	pi.Step(filepath.Join(root, "src", "App.jsx"))
	pi.Step(filepath.Join(root, "README.md"))
	pi.Complete()

	want := "Archiving 2 files:\n" +
		"  [1/2] " + filepath.Join("src", "App.jsx") + "\n" +
		"  [2/2] README.md\n" +
		"✓ Archived 2 of 2 files\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestProgressIndicator_UnreadableFilesAreNotCountedAsArchived(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, "", 3)

	pi.Start()
	pi.Step("a.js")
	pi.StepFailed("b.js")
	pi.Step("c.js")
	pi.Complete()

	want := "Archiving 3 files:\n" +
		"  [1/3] a.js\n" +
		"  [2/3] b.js (unreadable)\n" +
		"  [3/3] c.js\n" +
		"! Archived 2 of 3 files, 1 unreadable\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestProgressIndicator_CompleteWithoutSteps(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, "", 0)

	pi.Start()
	pi.Complete()

	want := "Archiving 0 files:\n✓ Archived 0 of 0 files\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
