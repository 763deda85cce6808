package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxroute/pkg/buildinfo"
	"github.com/matzehuels/boxroute/pkg/cache"
	"github.com/matzehuels/boxroute/pkg/config"
	pkgio "github.com/matzehuels/boxroute/pkg/io"
	"github.com/matzehuels/boxroute/pkg/pipeline"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "boxroute"

	// stdinName is the input argument that reads the diagram from stdin.
	stdinName = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default configuration file location.
	ConfigPath string

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Boxroute lays out text diagrams of boxes and connections",
		Long:         `Boxroute reads a diagram of named text boxes and connections, places the boxes on a character grid and routes every connection around them without overlaps.`,
		Version:      buildinfo.Current().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/boxroute/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. One-shot commands never
// reuse a layout, so the cache is disabled.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration file named by --config, or the default
// file when it exists.
func (c *CLI) loadConfig() (config.File, error) {
	if c.ConfigPath != "" {
		return config.Load(c.ConfigPath)
	}
	return config.LoadDefault()
}

// layoutFlags are the layout settings shared by every command that computes
// a layout. Only flags set on the command line override the config file.
type layoutFlags struct {
	placement   string
	policy      string
	width       int
	height      int
	maxAttempts int
	penalty     int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.placement, "placement", "", "block placement: vertical (default), connectivity")
	cmd.Flags().StringVar(&f.policy, "policy", "", "routing policy: strict (default), permissive")
	cmd.Flags().IntVar(&f.width, "width", 0, "screen width in cells")
	cmd.Flags().IntVar(&f.height, "height", 0, "screen height in cells")
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", 0, "bound on anchor assignments tried by the strict router")
	cmd.Flags().IntVar(&f.penalty, "penalty", 0, "cost of crossing a taken cell (permissive)")
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if flags.Changed("placement") {
		opts.Placement = f.placement
	}
	if flags.Changed("policy") {
		opts.Policy = f.policy
	}
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("max-attempts") {
		opts.MaxAttempts = f.maxAttempts
	}
	if flags.Changed("penalty") {
		opts.Penalty = f.penalty
	}
}

// options merges the config file and command-line flags into pipeline options.
func (c *CLI) options(cmd *cobra.Command, flags *layoutFlags) (pipeline.Options, error) {
	file, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("load config: %w", err)
	}
	opts := pipeline.OptionsFromConfig(file)
	flags.apply(cmd, &opts)
	opts.Logger = c.Logger
	return opts, nil
}

// =============================================================================
// Input
// =============================================================================

// readDiagram parses the diagram named by input. "-" reads stdin as text.
// A non-empty format overrides detection by file extension.
func (c *CLI) readDiagram(ctx context.Context, runner *pipeline.Runner, input, format string) ([]spec.Record, error) {
	if input == stdinName {
		data, err := io.ReadAll(c.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if format == "" {
			format = string(pkgio.FormatText)
		}
		return runner.Parse(ctx, data, pkgio.Format(format), "stdin")
	}
	if format == "" {
		return runner.ParseFile(ctx, input)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	return runner.Parse(ctx, data, pkgio.Format(format), input)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// basePath strips a known output extension, or derives the path from input.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName {
			return "diagram"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(formatForExt(ext)) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// extForFormat returns the file extension written for format.
func extForFormat(format string) string {
	switch format {
	case pipeline.FormatText:
		return ".txt"
	default:
		return "." + format
	}
}

func formatForExt(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "txt" {
		return pipeline.FormatText
	}
	return ext
}
