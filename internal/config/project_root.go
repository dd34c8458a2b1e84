package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectRoot walks upward from start looking for a directory that
// contains marker. It returns the first such directory, or start itself when
// the filesystem root is reached without finding the marker.
func FindProjectRoot(start, marker string) string {
	current := start
	for {
		markerPath := filepath.Join(current, marker)
		if info, err := os.Stat(markerPath); err == nil && !info.IsDir() {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			break
		}
		current = parent
	}

	return start
}

// ResolveProjectRoot returns explicitRoot when set, otherwise the project root
// found by searching upward from the current working directory.
func ResolveProjectRoot(explicitRoot, marker string) (string, error) {
	if explicitRoot != "" {
		abs, err := filepath.Abs(explicitRoot)
		if err != nil {
			return "", fmt.Errorf("resolve root %s: %w", explicitRoot, err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return FindProjectRoot(cwd, marker), nil
}
