package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxroute/pkg/pipeline"
)

// renderOpts holds CLI-specific options for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple outputs)
	formats     []string // output formats: "text", "ansi", "json", "dot", "svg"
	inputFormat string   // input format override: "text", "json", "hcl"
	color       bool     // color text output with ANSI escapes
}

// renderCommand creates the render command for drawing a diagram.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		flags      layoutFlags
	)
	ropts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [diagram]",
		Short: "Lay out a diagram and draw it",
		Long: `Lay out a diagram and draw it.

The diagram is read from a .box text file, a .json document or an .hcl file
("-" reads text from stdin). Blocks are placed on the screen and every
connection is routed around them.

With a single format and no --output the drawing is written to stdout.
Several formats are written next to the input (or the --output base path)
with one file per format.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ropts.formats = parseFormats(formatsStr)
			if ropts.color {
				ropts.formats = colorFormats(ropts.formats)
			}
			if err := pipeline.ValidateFormats(ropts.formats); err != nil {
				return err
			}
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Formats = ropts.formats
			return c.runRender(cmd.Context(), args[0], ropts, opts)
		},
	}

	cmd.Flags().StringVarP(&ropts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), ansi, json, dot, svg (comma-separated)")
	cmd.Flags().StringVar(&ropts.inputFormat, "input-format", "", "input format: text, json, hcl (default: by extension)")
	cmd.Flags().BoolVar(&ropts.color, "color", false, "color text output with ANSI escapes")
	flags.register(cmd)

	return cmd
}

// colorFormats swaps plain text for its colored rendition.
func colorFormats(formats []string) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		if f == pipeline.FormatText {
			f = pipeline.FormatANSI
		}
		out[i] = f
	}
	return out
}

// runRender parses the diagram, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, ropts renderOpts, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := c.newRunner()
	defer runner.Close()

	records, err := c.readDiagram(ctx, runner, input, ropts.inputFormat)
	if err != nil {
		return err
	}

	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	warnIncomplete(result)

	if len(ropts.formats) == 1 && ropts.output == "" {
		_, err := c.Stdout.Write(result.Artifacts[ropts.formats[0]])
		prog.done("rendered diagram", routeFields(result.Stats.BlockCount, result.Stats.RoutedCount, result.Stats.ConnectionCount)...)
		return err
	}

	paths, err := writeArtifacts(result, ropts, input)
	if err != nil {
		return err
	}
	prog.done("rendered diagram", append(routeFields(result.Stats.BlockCount, result.Stats.RoutedCount, result.Stats.ConnectionCount),
		"files", len(paths))...)

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.BlockCount, result.Stats.RoutedCount, result.Stats.ConnectionCount)
	return nil
}

// writeArtifacts writes one file per format and returns the paths written.
func writeArtifacts(result *pipeline.Result, ropts renderOpts, input string) ([]string, error) {
	if len(ropts.formats) == 1 && ropts.output != "" {
		path := ropts.output
		if err := writeFile(path, result.Artifacts[ropts.formats[0]]); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	base := basePath(ropts.output, input)
	paths := make([]string, 0, len(ropts.formats))
	for _, format := range ropts.formats {
		path := base + extForFormat(format)
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// warnIncomplete reports connections the router could not draw.
func warnIncomplete(result *pipeline.Result) {
	if result.Complete() {
		return
	}
	missing := result.Stats.ConnectionCount - result.Stats.RoutedCount
	printWarning("%d of %d connections could not be routed", missing, result.Stats.ConnectionCount)
	for _, cs := range result.Route.Unrouted {
		printDetail("%s", cs)
	}
}
