package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/codearchive/internal/config"
	"github.com/spf13/cobra"
)

// NewSectionsCommand creates the 'codearchive sections' command
func NewSectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Show the effective sections and exclusions",
		Long: `Print the sections in archive order together with the allowed extensions
and the excluded directory and file names, after applying the project's
.codearchive.yaml.

Examples:
  codearchive sections
  codearchive sections --config ./archive.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := loadProject(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			printSections(cmd.OutOrStdout(), cfg, root)
			return nil
		},
		SilenceUsage: true,
	}

	addProjectFlags(cmd)

	return cmd
}

func printSections(out io.Writer, cfg *config.Config, root string) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(out, "Project root: %s\n", root)
	fmt.Fprintf(out, "Output: %s\n", cfg.Output)
	fmt.Fprintf(out, "Title: %s\n\n", cfg.Title)

	cyan.Fprintf(out, "Sections (archive order):\n")
	width := 0
	for _, s := range cfg.Sections {
		if len(s.Extension) > width {
			width = len(s.Extension)
		}
	}
	for i, s := range cfg.Sections {
		fmt.Fprintf(out, "  %2d. %-*s  %s\n", i+1, width, s.Extension, s.Name)
	}

	if missing := cfg.UnsectionedExtensions(); len(missing) > 0 {
		yellow.Fprintf(out, "\nExtensions without a section: %s\n", strings.Join(missing, ", "))
	}

	fmt.Fprintln(out)
	cyan.Fprintf(out, "Excluded directories:\n")
	fmt.Fprintf(out, "  %s\n", joinOrNone(cfg.ExcludeDirs))
	cyan.Fprintf(out, "Excluded files:\n")
	fmt.Fprintf(out, "  %s\n", joinOrNone(cfg.ExcludeFiles))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
