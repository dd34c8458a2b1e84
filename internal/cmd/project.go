package cmd

import (
	"fmt"

	"github.com/harrison/codearchive/internal/config"
	"github.com/spf13/cobra"
)

// loadProject resolves the project root and its configuration from the
// --root, --marker and --config flags.
//
// An explicit --config is read before the root is located so its marker_file
// takes part in the search. Otherwise the config is read from the root that
// was found with the default or flagged marker.
func loadProject(cmd *cobra.Command) (*config.Config, string, error) {
	rootFlag, _ := cmd.Flags().GetString("root")
	markerFlag, _ := cmd.Flags().GetString("marker")
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	}

	marker := config.DefaultConfig().MarkerFile
	if cfg != nil {
		marker = cfg.MarkerFile
	}
	if cmd.Flags().Changed("marker") {
		marker = markerFlag
	}

	root, err := config.ResolveProjectRoot(rootFlag, marker)
	if err != nil {
		return nil, "", fmt.Errorf("failed to locate project root: %w", err)
	}

	if cfg == nil {
		cfg, err = config.LoadConfigFromDir(root)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config from %s: %w", root, err)
		}
	}
	cfg.MarkerFile = marker

	return cfg, root, nil
}
