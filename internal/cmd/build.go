package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/codearchive/internal/archive"
	"github.com/harrison/codearchive/internal/display"
	"github.com/harrison/codearchive/internal/logger"
	"github.com/harrison/codearchive/internal/models"
	"github.com/spf13/cobra"
)

// runBuild builds the archive for the project selected by the command's flags
func runBuild(cmd *cobra.Command) error {
	cfg, root, err := loadProject(cmd)
	if err != nil {
		return err
	}

	var outputPtr, titlePtr, logLevelPtr *string
	if cmd.Flags().Changed("output") {
		output, _ := cmd.Flags().GetString("output")
		outputPtr = &output
	}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		titlePtr = &title
	}
	if cmd.Flags().Changed("log-level") {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &logLevel
	}
	excludeDirs, _ := cmd.Flags().GetStringSlice("exclude-dir")
	excludeFiles, _ := cmd.Flags().GetStringSlice("exclude-file")

	cfg.MergeWithFlags(outputPtr, titlePtr, logLevelPtr, excludeDirs, excludeFiles)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	if verbose && quiet {
		return fmt.Errorf("cannot use --verbose and --quiet together")
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	var log archive.Logger = logger.NewConsoleLogger(stderr, cfg.LogLevel)
	if quiet {
		log = logger.NewNoOpLogger()
	}
	if verbose {
		log = &progressLogger{Logger: log, out: stderr, root: root}
	}

	if missing := cfg.UnsectionedExtensions(); len(missing) > 0 {
		display.Warning{
			Title:      fmt.Sprintf("Extensions without a section: %s", strings.Join(missing, ", ")),
			Message:    "Files with these extensions are matched but not written to the archive",
			Suggestion: "Add a section for each extension in .codearchive.yaml",
		}.Display(stderr)
	}

	archiver := archive.New(archive.Options{
		Root:         root,
		Output:       cfg.Output,
		Title:        cfg.Title,
		Sections:     cfg.Sections,
		Extensions:   cfg.Extensions,
		ExcludeDirs:  cfg.ExcludeDirs,
		ExcludeFiles: cfg.ExcludeFiles,
	}, log)

	result, err := archiver.Build()
	if err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	if len(result.FileErrors) > 0 {
		display.WarnUnreadableFiles(root, result.FileErrors).Display(stderr)
	}

	if !quiet {
		printSuccess(stdout, result)
	}

	return nil
}

func printSuccess(out io.Writer, result *models.ArchiveResult) {
	fmt.Fprintf(out, "Master code file has been created successfully!\n")
	fmt.Fprintf(out, "Project root used: %s\n", result.Root)
	fmt.Fprintf(out, "Archive written to: %s\n", result.Output)
}

// progressLogger prints a [N/Total] line for every file on top of the
// wrapped logger's output.
type progressLogger struct {
	archive.Logger
	out      io.Writer
	root     string
	progress *display.ProgressIndicator
}

func (p *progressLogger) LogScanComplete(root string, files int) {
	p.Logger.LogScanComplete(root, files)
	p.progress = display.NewProgressIndicator(p.out, p.root, files)
	p.progress.Start()
}

func (p *progressLogger) LogFileArchived(rec models.FileRecord, bytes int) {
	p.Logger.LogFileArchived(rec, bytes)
	if p.progress != nil {
		p.progress.Step(rec.Path)
	}
}

func (p *progressLogger) LogFileError(ferr *models.FileError) {
	p.Logger.LogFileError(ferr)
	if p.progress != nil {
		p.progress.StepFailed(ferr.Path)
	}
}

func (p *progressLogger) LogSummary(result *models.ArchiveResult) {
	if p.progress != nil {
		p.progress.Complete()
	}
	p.Logger.LogSummary(result)
}
