package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/codearchive/internal/config"
	"github.com/harrison/codearchive/internal/filelock"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the 'codearchive init' command
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .codearchive.yaml into the project root",
		Long: `Write the built-in defaults to .codearchive.yaml in the project root so
they can be edited. An existing file is kept unless --force is given.

Examples:
  codearchive init
  codearchive init --root ./web --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().String("root", "", "Project root (default: search upward for the marker file)")
	cmd.Flags().String("marker", "", "Marker file identifying the project root (default: package.json)")

	return cmd
}

// runInit writes the default configuration for the selected project
func runInit(cmd *cobra.Command, force bool) error {
	rootFlag, _ := cmd.Flags().GetString("root")
	markerFlag, _ := cmd.Flags().GetString("marker")

	cfg := config.DefaultConfig()
	if cmd.Flags().Changed("marker") {
		cfg.MarkerFile = markerFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	root, err := config.ResolveProjectRoot(rootFlag, cfg.MarkerFile)
	if err != nil {
		return fmt.Errorf("failed to locate project root: %w", err)
	}

	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
