package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cdmlens/cdmlens/pkg/graph"
	"github.com/cdmlens/cdmlens/pkg/pipeline"
)

// planCommand creates the plan command for resolving render plans.
func (c *CLI) planCommand() *cobra.Command {
	var (
		mode        string
		output      string
		noCache     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "plan [graph.json]",
		Short: "Resolve the parallel-edge render plan for a graph",
		Long: `Resolve the parallel-edge render plan for a graph.

The plan command takes a graph.json file and computes, per edge, the curve
direction, roundness, and loop size needed to keep parallel relationships
between the same two objects visually distinct. The output is a plan.json
file consumed by rendering surfaces (or by 'cdmlens render').

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], mode, output, noCache, interactive)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "resolver mode: default, relationship-emphasis")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.plan.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the plan in an interactive table")

	return cmd
}

// runPlan loads the graph, resolves the plan, and writes or displays it.
func (c *CLI) runPlan(ctx context.Context, input, mode, output string, noCache, interactive bool) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	if mode == "" {
		mode = string(pipeline.DefaultMode)
	}
	opts := pipeline.Options{
		Mode:    mode,
		Formats: []string{pipeline.FormatPlan},
	}

	spinner := newSpinnerWithContext(ctx, "Resolving render plan...")
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Plan failed")
		return fmt.Errorf("resolve plan: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if interactive {
		model := NewPlanTableModel(result.Graph, result.Plans)
		if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("interactive view: %w", err)
		}
		return nil
	}

	path := outputPath(output, input, "plan.json")
	if err := os.WriteFile(path, result.Artifacts[pipeline.FormatPlan], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Plan resolved (%s mode)", opts.Mode)
	printFile(path)
	printStats(len(g.Nodes), len(g.Edges), result.CacheInfo.PlanHit)
	printNewline()
	printNextStep("Render", "cdmlens render "+input)

	return nil
}
