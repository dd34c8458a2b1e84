package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/codearchive/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional per-project configuration file
const FileName = ".codearchive.yaml"

// Config represents codearchive configuration options
type Config struct {
	// Title is the first line of the generated archive
	Title string `yaml:"title"`

	// Output is the archive path, relative to the working directory unless absolute
	Output string `yaml:"output"`

	// MarkerFile identifies the project root during the upward search
	MarkerFile string `yaml:"marker_file"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Sections defines the archive sections and their order
	Sections []models.Section `yaml:"sections"`

	// Extensions is the set of file extensions to include
	Extensions []string `yaml:"extensions"`

	// ExcludeDirs lists directory names that are never descended into
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludeFiles lists exact file names to skip
	ExcludeFiles []string `yaml:"exclude_files"`
}

// DefaultConfig returns the configuration for archiving a React.js project
func DefaultConfig() *Config {
	sections := []models.Section{
		{Extension: ".jsx", Name: "React Components"},
		{Extension: ".tsx", Name: "TypeScript React Components"},
		{Extension: ".js", Name: "JavaScript Files"},
		{Extension: ".ts", Name: "TypeScript Files"},
		{Extension: ".css", Name: "CSS Files"},
		{Extension: ".scss", Name: "SCSS Files"},
		{Extension: ".less", Name: "Less Files"},
		{Extension: ".json", Name: "Configuration Files"},
		{Extension: ".html", Name: "HTML Files"},
		{Extension: ".md", Name: "Documentation"},
		{Extension: ".env", Name: "Environment Files"},
	}

	return &Config{
		Title:      "React.js Project Code Archive",
		Output:     "react_master_code_file.txt",
		MarkerFile: "package.json",
		LogLevel:   "info",
		Sections:   sections,
		Extensions: sectionExtensions(sections),
		ExcludeDirs: []string{
			"node_modules",
			"build",
			"dist",
			".git",
			".idea",
			".vscode",
			"coverage",
			".next",
			"out",
			".cache",
		},
		ExcludeFiles: []string{
			"package-lock.json",
			".DS_Store",
			".env.local",
			".env.development.local",
			".env.test.local",
			".env.production.local",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Scalars override defaults only when non-empty
	if fileCfg.Title != "" {
		cfg.Title = fileCfg.Title
	}
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if fileCfg.MarkerFile != "" {
		cfg.MarkerFile = fileCfg.MarkerFile
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	// Lists replace defaults whenever the key is present, so an explicit
	// empty list clears a default
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["sections"]; exists {
			cfg.Sections = fileCfg.Sections
			if _, hasExts := rawMap["extensions"]; !hasExts {
				cfg.Extensions = sectionExtensions(fileCfg.Sections)
			}
		}
		if _, exists := rawMap["extensions"]; exists {
			cfg.Extensions = fileCfg.Extensions
		}
		if _, exists := rawMap["exclude_dirs"]; exists {
			cfg.ExcludeDirs = fileCfg.ExcludeDirs
		}
		if _, exists := rawMap["exclude_files"]; exists {
			cfg.ExcludeFiles = fileCfg.ExcludeFiles
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .codearchive.yaml in the specified directory
// If the file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values; exclusion flags are appended
func (c *Config) MergeWithFlags(output, title, logLevel *string, excludeDirs, excludeFiles []string) {
	if output != nil {
		c.Output = *output
	}
	if title != nil {
		c.Title = *title
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	c.ExcludeDirs = appendMissing(c.ExcludeDirs, excludeDirs)
	c.ExcludeFiles = appendMissing(c.ExcludeFiles, excludeFiles)
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if c.MarkerFile == "" || strings.ContainsRune(c.MarkerFile, filepath.Separator) {
		return fmt.Errorf("marker_file must be a plain file name, got %q", c.MarkerFile)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if len(c.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if err := validateExtension(s.Extension); err != nil {
			return fmt.Errorf("sections[%d]: %w", i, err)
		}
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("sections[%d]: name cannot be empty", i)
		}
		if seen[s.Extension] {
			return fmt.Errorf("sections[%d]: duplicate extension %q", i, s.Extension)
		}
		seen[s.Extension] = true
	}

	for i, ext := range c.Extensions {
		if err := validateExtension(ext); err != nil {
			return fmt.Errorf("extensions[%d]: %w", i, err)
		}
	}

	return nil
}

// UnsectionedExtensions returns allowed extensions that no section lists.
// Files with these extensions are scanned but never written.
func (c *Config) UnsectionedExtensions() []string {
	sectioned := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		sectioned[s.Extension] = true
	}
	var missing []string
	for _, ext := range c.Extensions {
		if !sectioned[ext] {
			missing = append(missing, ext)
		}
	}
	return missing
}

func validateExtension(ext string) error {
	if len(ext) < 2 || !strings.HasPrefix(ext, ".") || strings.Count(ext, ".") != 1 {
		return fmt.Errorf("extension %q must be a dot followed by a suffix without dots, e.g. \".js\"", ext)
	}
	return nil
}

func sectionExtensions(sections []models.Section) []string {
	exts := make([]string, 0, len(sections))
	for _, s := range sections {
		exts = append(exts, s.Extension)
	}
	return exts
}

func appendMissing(list, extra []string) []string {
	present := make(map[string]bool, len(list))
	for _, item := range list {
		present[item] = true
	}
	for _, item := range extra {
		if !present[item] {
			list = append(list, item)
			present[item] = true
		}
	}
	return list
}
