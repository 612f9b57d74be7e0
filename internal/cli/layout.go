package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timelanes/pkg/pipeline"
	"github.com/matzehuels/timelanes/pkg/timeline"
)

// overrides are request fields set on the command line. Nil fields keep the
// value from the request file.
type overrides struct {
	Hide      []string
	Min       *int64
	Max       *int64
	BlockGap  *int
	MinLength *int64
}

// apply writes o into req. Hidden categories are added to those of the file.
func (o overrides) apply(req *timeline.Request) {
	for _, cat := range o.Hide {
		if !slices.Contains(req.Hidden, cat) {
			req.Hidden = append(req.Hidden, cat)
		}
	}
	if o.Min != nil {
		req.Window.Min = o.Min
	}
	if o.Max != nil {
		req.Window.Max = o.Max
	}
	if o.BlockGap != nil {
		req.BlockGap = *o.BlockGap
	}
	if o.MinLength != nil {
		req.MinLength = *o.MinLength
	}
}

// unknownHidden returns the entries of o.Hide that name no category of req.
func (o overrides) unknownHidden(req timeline.Request) []string {
	known := req.Categories()
	var out []string
	for _, cat := range o.Hide {
		if !slices.Contains(known, cat) {
			out = append(out, cat)
		}
	}
	return out
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		table     bool
		opts      pipeline.Options
		hide      []string
		windowMin int64
		windowMax int64
		blockGap  int
		minLength int64
	)

	cmd := &cobra.Command{
		Use:   "layout [request.toml|request.json]",
		Short: "Assign lanes to the intervals of a request file",
		Long: `Assign lanes to the intervals of a request file.

The request lists intervals with a category, a start and an end, plus optional
category order, adjacency policies, a visible window and hidden categories.
Each interval is placed in the lowest lane of its category block that does not
conflict with the lane's last interval, and blocks are stacked in category
order. The output is a layout.json file with one row per visible interval.

Flags override the corresponding request fields. Results are cached locally
for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := overrides{Hide: hide}
			flags := cmd.Flags()
			if flags.Changed("min") {
				o.Min = &windowMin
			}
			if flags.Changed("max") {
				o.Max = &windowMax
			}
			if flags.Changed("block-gap") {
				o.BlockGap = &blockGap
			}
			if flags.Changed("min-length") {
				o.MinLength = &minLength
			}
			s, err := c.settings(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], output, o, opts, s, table)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVar(&table, "table", false, "print the laid-out rows as a table")
	registerCacheFlags(cmd)

	cmd.Flags().StringSliceVar(&hide, "hide", nil, "categories to hide (comma-separated)")
	cmd.Flags().Int64Var(&windowMin, "min", 0, "drop intervals starting before this point")
	cmd.Flags().Int64Var(&windowMax, "max", 0, "drop intervals ending after this point")
	cmd.Flags().IntVar(&blockGap, "block-gap", 0, "empty rows between category blocks")
	cmd.Flags().Int64Var(&minLength, "min-length", 0, "stretch shorter intervals to this length")

	return cmd
}

// runLayout loads the request, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, o overrides, opts pipeline.Options, s Settings, showTable bool) error {
	prog := newProgress(c.Logger)
	req, err := timeline.ReadRequestFile(input)
	if err != nil {
		return fmt.Errorf("load request %s: %w", input, err)
	}
	o.apply(&req)
	for _, cat := range o.unknownHidden(req) {
		printWarning("No intervals in hidden category %q", cat)
	}

	runner, err := c.newRunner(ctx, s)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Layout(ctx, req, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutputPath(input)
	}
	if err := timeline.WriteLayoutFile(res.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Laid out %d intervals", res.Stats.Placed))
	c.Logger.Debug("layout written", "run", res.RunID, "hash", res.RequestHash)

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.Placed, res.Layout.Hidden, res.Stats.Lanes, res.Layout.Height, res.CacheHit)
	if showTable {
		printNewline()
		renderRows(os.Stdout, res.Layout)
	}
	return nil
}

// defaultOutputPath replaces the extension of input with .layout.json.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
