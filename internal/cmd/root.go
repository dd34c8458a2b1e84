package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for codearchive
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codearchive",
		Short: "Concatenate a project's source files into one text archive",
		Long: `codearchive locates the project root by searching upward for a marker
file (package.json by default), collects every file whose extension is
configured, and writes them into a single archive grouped into sections.

Directories such as node_modules, build and .git are never descended into.
Settings can be overridden by a .codearchive.yaml file in the project root
or by flags.

Examples:
  # Archive the React project containing the current directory
  codearchive

  # Write the archive elsewhere and also skip a generated directory
  codearchive -o /tmp/archive.txt --exclude-dir generated`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd)
		},
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "", "Archive file path (default: react_master_code_file.txt)")
	cmd.Flags().String("title", "", "Title written on the first line of the archive")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().BoolP("verbose", "v", false, "Show each file as it is archived")
	cmd.Flags().BoolP("quiet", "q", false, "Only print warnings and errors")
	cmd.Flags().StringSlice("exclude-dir", nil, "Additional directory name to skip (repeatable)")
	cmd.Flags().StringSlice("exclude-file", nil, "Additional file name to skip (repeatable)")
	addProjectFlags(cmd)

	// Add subcommands
	cmd.AddCommand(NewSectionsCommand())
	cmd.AddCommand(NewInitCommand())

	return cmd
}

// addProjectFlags registers the flags that select the project and its config
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Project root (default: search upward for the marker file)")
	cmd.Flags().String("marker", "", "Marker file identifying the project root (default: package.json)")
	cmd.Flags().String("config", "", "Path to config file (default: <root>/.codearchive.yaml)")
}
