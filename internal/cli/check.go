package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/graph"
	"github.com/matzehuels/boxroute/pkg/layout/route"
	"github.com/matzehuels/boxroute/pkg/pipeline"
	"github.com/matzehuels/boxroute/pkg/spec"
)

// Connection states shown by the check table.
const (
	statusRouted   = "routed"
	statusUnrouted = "unrouted"
	statusSkipped  = "skipped"
)

// checkCommand creates the check command that reports whether a diagram
// routes completely.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		inputFormat string
		flags       layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "check [diagram]",
		Short: "Report whether every connection of a diagram can be routed",
		Long: `Report whether every connection of a diagram can be routed.

The check command resolves the diagram, places its blocks and runs the
router, then prints one row per connection with its status and path length
followed by the router statistics. It exits with an error when a connection
stays unrouted.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runCheck(cmd.Context(), args[0], inputFormat, opts)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: text, json, hcl (default: by extension)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, input, inputFormat string, opts pipeline.Options) error {
	runner := c.newRunner()
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Reading "+input+"...")
	spinner.Start()

	records, err := c.readDiagram(ctx, runner, input, inputFormat)
	if err != nil {
		spinner.Stop()
		return err
	}
	g, err := graph.Build(records)
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.Update(fmt.Sprintf("Routing %d connections...", len(g.Connections)))
	_, res, err := runner.ComputeLayout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Routing failed")
		return err
	}
	spinner.Stop()

	fmt.Fprintln(statusOut, checkTable(res))
	printNewline()
	printKeyValue("blocks", strconv.Itoa(len(g.Blocks)))
	printKeyValue("routed", fmt.Sprintf("%d/%d", len(res.Connections), len(g.Connections)))
	printKeyValue("attempts", strconv.Itoa(res.Attempts))
	printKeyValue("searches", strconv.Itoa(res.Searches))
	printKeyValue("memo", res.Memo.String())
	printKeyValue("duration", res.Duration.String())
	if res.Exhausted {
		printWarning("search stopped after %d attempts", res.Attempts)
	}
	for _, fault := range res.Faults {
		printError("%v", fault)
	}

	if !res.Complete(len(g.Connections)) {
		return errs.New(errs.ErrCodeUnroutable, "%d of %d connections could not be routed",
			len(g.Connections)-len(res.Connections), len(g.Connections))
	}
	printSuccess("All connections routed")
	return nil
}

// checkRow is one connection line of the check table.
type checkRow struct {
	conn   spec.ConnectionSpec
	status string
	cells  int
}

func checkRows(res route.Result) []checkRow {
	rows := make([]checkRow, 0, len(res.Connections)+len(res.Unrouted)+len(res.Skipped))
	for _, cd := range res.Connections {
		cs := spec.ConnectionSpec{Kind: cd.Kind, Start: cd.Start, End: cd.End, Color: cd.Color}
		rows = append(rows, checkRow{conn: cs, status: statusRouted, cells: cd.Len()})
	}
	for _, cs := range res.Unrouted {
		rows = append(rows, checkRow{conn: cs, status: statusUnrouted})
	}
	for _, cs := range res.Skipped {
		rows = append(rows, checkRow{conn: cs, status: statusSkipped})
	}
	return rows
}

// checkTable renders the per-connection status table.
func checkTable(res route.Result) string {
	rows := checkRows(res)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		length := "-"
		if r.status == statusRouted {
			length = strconv.Itoa(r.cells)
		}
		cells[i] = []string{r.conn.Start, r.conn.End, r.conn.Kind.String(), r.status, length}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Start", "End", "Kind", "Status", "Cells").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) || col != 3 {
				return lipgloss.NewStyle()
			}
			switch rows[row].status {
			case statusRouted:
				return StyleSuccess
			case statusUnrouted:
				return StyleWarning
			default:
				return StyleDim
			}
		})

	return t.Render()
}
