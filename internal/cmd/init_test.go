package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/codearchive/internal/config"
	"github.com/harrison/codearchive/internal/filelock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_WritesDefaults(t *testing.T) {
	root := newProject(t, map[string]string{"package.json": "{}"})
	path := filepath.Join(root, config.FileName)

	stdout, _, err := executeCommand(t, "init", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created "+path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	assert.FileExists(t, filelock.LockPath(path))
}

func TestInitCommand_RefusesToOverwrite(t *testing.T) {
	root := newProject(t, map[string]string{config.FileName: "title: Mine\n"})
	path := filepath.Join(root, config.FileName)

	_, _, err := executeCommand(t, "init", "--root", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, "title: Mine\n", readFile(t, path))

	_, _, err = executeCommand(t, "init", "--root", root, "--force")
	require.NoError(t, err)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "React.js Project Code Archive", cfg.Title)
}

func TestInitCommand_CustomMarker(t *testing.T) {
	root := newProject(t, map[string]string{
		"go.mod":        "module example",
		"internal/x.go": "package x",
	})
	t.Chdir(filepath.Join(root, "internal"))

	_, _, err := executeCommand(t, "init", "--marker", "go.mod")
	require.NoError(t, err)

	cfg, err := config.LoadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, "go.mod", cfg.MarkerFile)

	_, err = os.Stat(filepath.Join(root, "internal", config.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestInitCommand_InvalidMarker(t *testing.T) {
	root := newProject(t, nil)

	_, _, err := executeCommand(t, "init", "--root", root, "--marker", filepath.Join("a", "b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker_file")
}
