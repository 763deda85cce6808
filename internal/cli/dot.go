package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/graph"
	"github.com/matzehuels/boxroute/pkg/pipeline"
	"github.com/matzehuels/boxroute/pkg/render/nodelink"
)

// dotCommand creates the dot command that exports the block graph.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output      string
		format      string
		inputFormat string
		detailed    bool
	)

	cmd := &cobra.Command{
		Use:   "dot [diagram]",
		Short: "Export the block graph as Graphviz DOT or SVG",
		Long: `Export the block graph as Graphviz DOT or SVG.

The graph has one node per block and one edge per connection. Arrowheads
follow the connection kind. No grid layout is computed, so this works for
diagrams that do not route.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
				return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be dot or svg)", format)
			}
			return c.runDOT(cmd.Context(), args[0], inputFormat, format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: dot, svg")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: text, json, hcl (default: by extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with block name and connection count")

	return cmd
}

func (c *CLI) runDOT(ctx context.Context, input, inputFormat, format, output string, detailed bool) error {
	logger := loggerFromContext(ctx)

	runner := c.newRunner()
	defer runner.Close()

	records, err := c.readDiagram(ctx, runner, input, inputFormat)
	if err != nil {
		return err
	}
	g, err := graph.Build(records)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: detailed})
	data := []byte(dot)
	if format == pipeline.FormatSVG {
		data, err = nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}
	logger.Debug("exported graph", "format", format, "bytes", len(data))

	if output == "" {
		_, err := c.Stdout.Write(data)
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	printSuccess("Exported %s", format)
	printFile(output)
	return nil
}
