package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxroute/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		flags       layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram]",
		Short: "Compute block positions and connection paths",
		Long: `Compute block positions and connection paths.

The layout command places the diagram's blocks and routes its connections,
then writes the result as layout.json: every block with its position, size
and wrapped text lines, and every routed connection as a list of straight
parts with their glyphs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), args[0], inputFormat, output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: text, json, hcl (default: by extension)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the diagram, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, inputFormat, output string, opts pipeline.Options) error {
	prog := newProgress(loggerFromContext(ctx))
	runner := c.newRunner()
	defer runner.Close()

	records, err := c.readDiagram(ctx, runner, input, inputFormat)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Routing connections...")
	spinner.Start()

	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := writeFile(outputPath, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	prog.done("wrote layout", routeFields(result.Stats.BlockCount, result.Stats.RoutedCount, result.Stats.ConnectionCount)...)

	warnIncomplete(result)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.BlockCount, result.Stats.RoutedCount, result.Stats.ConnectionCount)
	printNewline()
	printNextStep("Inspect", appName+" check "+input)

	return nil
}
