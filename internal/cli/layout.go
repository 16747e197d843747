package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfbx9da4/meanwhile/pkg/config"
	"github.com/mfbx9da4/meanwhile/pkg/pipeline"
	"github.com/mfbx9da4/meanwhile/pkg/viewport"
)

// layoutCommand creates the layout command for computing view geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{
		View:     pipeline.DefaultView,
		Viewport: viewport.Viewport{Width: 1280, Height: 800},
	}

	cmd := &cobra.Command{
		Use:   "layout [config file]",
		Short: "Compute view geometry from a config document",
		Long: `Compute view geometry from a config document.

The layout command takes a config document (JSON, TOML, or YAML) and computes
the cell grid, milestone lanes, and gantt bars for the requested view and
viewport. The output is a layout.json file a renderer can draw directly.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVarP(&opts.View, "view", "t", opts.View, "view mode: grid (default), weekly, monthly, timeline")
	cmd.Flags().Float64Var(&opts.Viewport.Width, "width", opts.Viewport.Width, "viewport width")
	cmd.Flags().Float64Var(&opts.Viewport.Height, "height", opts.Viewport.Height, "viewport height")
	cmd.Flags().StringVar(&opts.Today, "today", "", "override the current date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	doc, err := config.Load(input)
	if err != nil {
		return fmt.Errorf("load config %s: %w", input, err)
	}
	opts.Document = doc
	opts.Logger = logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.View))
	spinner.Start()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Computed %s layout for %d days", opts.View, result.Stats.TotalDays))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := result.Layout.WriteFile(outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.TotalDays, result.Stats.MilestoneCount, result.CacheInfo.LayoutHit)
	if !result.Layout.Fit {
		printWarning("Labels did not fit the height budget; some are collapsed")
	}
	printNewline()
	printNextStep("Serve layouts over HTTP", fmt.Sprintf("%s serve --config %s", appName, input))

	return nil
}
