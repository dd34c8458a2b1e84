package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}

	if lock.path != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.path)
	}
}

func TestLockUnlock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestTryLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock1 := NewFileLock(lockPath)
	lock2 := NewFileLock(lockPath)

	acquired, err := lock1.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("First TryLock should succeed")
	}

	acquired, err = lock2.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if acquired {
		t.Error("Second TryLock should fail when lock is held")
	}

	if err := lock1.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	acquired, err = lock2.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Error("TryLock should succeed after unlock")
	}

	lock2.Unlock()
}

func TestUnlock_KeepsLockFile(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	before, err := os.Stat(lockPath)
	if err != nil {
		t.Fatalf("lock file should exist while held: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	// A later locker must contend on the same file, not a fresh one
	after, err := os.Stat(lockPath)
	if err != nil {
		t.Fatalf("lock file should survive Unlock: %v", err)
	}
	if !os.SameFile(before, after) {
		t.Error("lock file was replaced after Unlock")
	}
}

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "test.txt")

	content := []byte("test content")
	if err := AtomicWrite(targetPath, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("Expected content %q, got %q", content, data)
	}
}

func TestAtomicWriteOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "test.txt")

	if err := os.WriteFile(targetPath, []byte("initial content"), 0644); err != nil {
		t.Fatalf("Failed to write initial content: %v", err)
	}

	newContent := []byte("new content")
	if err := AtomicWrite(targetPath, newContent); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(newContent) {
		t.Errorf("Expected content %q, got %q", newContent, data)
	}
}

func TestAtomicWritePermissions(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "test.txt")

	if err := AtomicWrite(targetPath, []byte("x")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("Expected permissions 0644, got %o", info.Mode().Perm())
	}
}

func TestAtomicWriteCreateDirectory(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "nested", "dir", "test.txt")

	if err := AtomicWrite(targetPath, []byte("x")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if _, err := os.Stat(targetPath); err != nil {
		t.Errorf("Target file was not created: %v", err)
	}
}

func TestLockAndWrite(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "test.txt")

	if err := LockAndWrite(targetPath, []byte("test content")); err != nil {
		t.Fatalf("LockAndWrite failed: %v", err)
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "test content" {
		t.Errorf("content = %q", data)
	}
	assertOnlyFiles(t, tmpDir, "test.txt", "test.txt.lock")

	// The lock was released, so a second write does not block
	if err := LockAndWrite(targetPath, []byte("second")); err != nil {
		t.Fatalf("second LockAndWrite failed: %v", err)
	}
}

func TestLockAndWrite_ReleasesLockOnError(t *testing.T) {
	// Root bypasses permission checks
	if os.Getuid() == 0 {
		t.Skip("Skipping permission test when running as root")
	}

	tmpDir := t.TempDir()
	targetDir := filepath.Join(tmpDir, "target")
	if err := os.Mkdir(targetDir, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	targetPath := filepath.Join(targetDir, "test.txt")

	// Lock file can be created, but the temp file cannot
	lock := NewFileLock(LockPath(targetPath))
	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	lock.Unlock()
	if err := os.Chmod(targetDir, 0555); err != nil {
		t.Fatalf("Failed to make directory read-only: %v", err)
	}
	defer os.Chmod(targetDir, 0755)

	if err := LockAndWrite(targetPath, []byte("test content")); err == nil {
		t.Fatal("Expected LockAndWrite to fail when writing to read-only directory")
	}

	acquired, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Error("lock should be released after a failed write")
	}
	lock.Unlock()
}

func TestAtomicFile_Commit(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "archive.txt")

	f, err := Create(targetPath)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if f.Name() != targetPath {
		t.Errorf("Name() = %q, want %q", f.Name(), targetPath)
	}

	if _, err := f.Write([]byte("part one\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Nothing is visible at the target until commit
	if _, err := os.Stat(targetPath); !os.IsNotExist(err) {
		t.Errorf("target should not exist before Commit")
	}

	if _, err := f.Write([]byte("part two\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := f.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "part one\npart two\n" {
		t.Errorf("content = %q", data)
	}

	assertOnlyFiles(t, tmpDir, "archive.txt", "archive.txt.lock")

	// Abort after Commit is a no-op
	if err := f.Abort(); err != nil {
		t.Errorf("Abort after Commit returned %v", err)
	}
	if _, err := f.Write([]byte("late")); err == nil {
		t.Error("Write after Commit should fail")
	}
	if err := f.Commit(); err == nil {
		t.Error("second Commit should fail")
	}
}

func TestAtomicFile_AbortKeepsPreviousContent(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "archive.txt")
	if err := os.WriteFile(targetPath, []byte("previous"), 0644); err != nil {
		t.Fatalf("Failed to write initial content: %v", err)
	}

	f, err := Create(targetPath)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	f.Write([]byte("half-written"))
	if err := f.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "previous" {
		t.Errorf("content = %q, want previous content", data)
	}

	assertOnlyFiles(t, tmpDir, "archive.txt", "archive.txt.lock")
}

func TestAtomicFile_Locked(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "archive.txt")

	first, err := Create(targetPath)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer first.Abort()

	second, err := Create(targetPath)
	if err == nil {
		second.Abort()
		t.Fatal("second Create should fail while the first holds the lock")
	}
	if !errors.Is(err, ErrLocked) {
		t.Errorf("error = %v, want ErrLocked", err)
	}
	if !strings.Contains(err.Error(), targetPath) {
		t.Errorf("error %q should name the target", err)
	}
}

func TestAtomicFile_SequentialRuns(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "archive.txt")

	for _, content := range []string{"first", "second"} {
		f, err := Create(targetPath)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		f.Write([]byte(content))
		if err := f.Commit(); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for _, e := range entries {
		if !want[e.Name()] {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
	if len(entries) != len(names) {
		t.Errorf("found %d entries, want %d", len(entries), len(names))
	}
}
