package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pigeon/pkg/coords"
	"github.com/matzehuels/pigeon/pkg/layout"
	"github.com/matzehuels/pigeon/pkg/observability"
	"github.com/matzehuels/pigeon/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
// Only flags set explicitly on the command line override the config file.
type renderFlags struct {
	config   string // TOML file with pipeline options
	cacheDir string // directory holding preprocessed_<algorithm>.json
	noCache  bool   // never read or write the layout cache

	opts pipeline.Options // flag values, copied over selectively
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	f := newRenderFlags()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render graph labels into the shape of a silhouette",
		Long: `Render lays out the graph, maps every node onto the reference image and
writes a PNG of node labels. Labels on dark pixels are drawn bold.

The normalized layout is cached per algorithm in --cache-dir, so rerunning
with the same algorithm skips the layout step. Use --refresh to recompute.`,
		Example: `  pigeon render
  pigeon render -l kamada_kawai -o pigeon-kk.png --edges
  pigeon render --graph graph/billi.json --sample 500 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), f, opts)
		},
	}
	f.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("layout", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return layout.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newRenderFlags() *renderFlags {
	return &renderFlags{
		cacheDir: defaultCacheDir,
		opts:     pipeline.DefaultOptions(),
	}
}

// register binds the flags to cmd with defaults taken from f.
func (f *renderFlags) register(cmd *cobra.Command) {
	d := f.opts
	cmd.Flags().StringVar(&f.opts.Image, "image", d.Image, "reference silhouette image")
	cmd.Flags().StringVar(&f.opts.Graph, "graph", d.Graph, "graph JSON with a links array")
	cmd.Flags().StringVarP(&f.opts.Algorithm, "layout", "l", d.Algorithm, "layout algorithm (see 'pigeon layouts')")
	cmd.Flags().StringVarP(&f.opts.Output, "output", "o", d.Output, "output PNG file")
	cmd.Flags().BoolVar(&f.opts.DrawEdges, "edges", false, "draw edges between labels")
	cmd.Flags().BoolVar(&f.opts.UserEdgesOnly, "user-edges", false, "keep only links flagged \"user\": true")
	cmd.Flags().IntVar(&f.opts.Sample, "sample", 0, "keep a random sample of this many links (0 keeps all)")
	cmd.Flags().Uint64Var(&f.opts.Seed, "seed", 0, "seed for sampling and layout (random when unset)")
	cmd.Flags().IntVar(&f.opts.Iterations, "iterations", 0, "layout iterations for the eades engine")
	cmd.Flags().IntVar(&f.opts.Margin, "margin", d.Margin, "margin in pixels (default: one inch at --dpi)")
	cmd.Flags().IntVar(&f.opts.DPI, "dpi", d.DPI, "print resolution used to derive the default margin")
	cmd.Flags().Float64Var(&f.opts.FontSize, "font-size", d.FontSize, "label font size in pixels")
	cmd.Flags().StringVar(&f.opts.FontLight, "font-light", "", "font for labels outside the silhouette (default: Go Regular)")
	cmd.Flags().StringVar(&f.opts.FontBold, "font-bold", "", "font for labels inside the silhouette (default: Go Bold)")
	cmd.Flags().Float64Var(&f.opts.Threshold, "threshold", d.Threshold, "pixels darker than this fraction of white are inside")
	cmd.Flags().StringVar(&f.opts.Labels.Separator, "label-separator", d.Labels.Separator, "label is the text after the last separator")
	cmd.Flags().IntVar(&f.opts.Labels.TrimPrefix, "label-trim", 0, "drop this many characters from the front of each id")
	cmd.Flags().BoolVar(&f.opts.Labels.Upper, "label-upper", d.Labels.Upper, "upper-case labels")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "ignore the cached layout and recompute it")
	cmd.Flags().StringVar(&f.config, "config", "", "TOML or YAML config file; explicit flags take precedence")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", f.cacheDir, "layout cache directory")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
}

// resolve builds the final options: defaults, then the config file, then
// every flag the user set explicitly.
func (f *renderFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	var fileKeys pipeline.ConfigKeys
	if f.config != "" {
		keys, err := pipeline.LoadConfig(f.config, &opts)
		if err != nil {
			return opts, err
		}
		fileKeys = keys
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("image", func() { opts.Image = f.opts.Image })
	set("graph", func() { opts.Graph = f.opts.Graph })
	set("layout", func() { opts.Algorithm = f.opts.Algorithm })
	set("output", func() { opts.Output = f.opts.Output })
	set("edges", func() { opts.DrawEdges = f.opts.DrawEdges })
	set("user-edges", func() { opts.UserEdgesOnly = f.opts.UserEdgesOnly })
	set("sample", func() { opts.Sample = f.opts.Sample })
	set("seed", func() { opts.Seed, opts.Seeded = f.opts.Seed, true })
	set("iterations", func() { opts.Iterations = f.opts.Iterations })
	set("dpi", func() { opts.DPI = f.opts.DPI })
	set("margin", func() { opts.Margin = f.opts.Margin })
	set("font-size", func() { opts.FontSize = f.opts.FontSize })
	set("font-light", func() { opts.FontLight = f.opts.FontLight })
	set("font-bold", func() { opts.FontBold = f.opts.FontBold })
	set("threshold", func() { opts.Threshold = f.opts.Threshold })
	set("label-separator", func() { opts.Labels.Separator = f.opts.Labels.Separator })
	set("label-trim", func() { opts.Labels.TrimPrefix = f.opts.Labels.TrimPrefix })
	set("label-upper", func() { opts.Labels.Upper = f.opts.Labels.Upper })
	set("refresh", func() { opts.Refresh = f.opts.Refresh })

	// The margin is one inch unless given explicitly.
	if flags.Changed("dpi") && !flags.Changed("margin") && !fileKeys.Defined("margin") {
		opts.Margin = opts.DPI
	}
	return opts, nil
}

func (c *CLI) runRender(ctx context.Context, f *renderFlags, opts pipeline.Options) error {
	logger := c.Logger
	var spinner *Spinner
	if !c.verbose() {
		logger = quietLogger(c.Logger)
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s with %s...", opts.Output, opts.Algorithm))
		observability.SetPipelineHooks(observability.PipelineFanout{observability.Pipeline(), spinnerHooks{spinner: spinner}})
		spinner.Start()
		defer spinner.Stop()
	}
	opts.Logger = logger

	runner, err := c.newRunner(f.cacheDir, f.noCache, logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Rendered %d labels", len(result.Labels))
	if spinner != nil {
		if err := spinner.StopWithSuccess(summary); err != nil {
			return fmt.Errorf("render interrupted: %w", err)
		}
	} else {
		printSuccess("%s", summary)
	}
	printFile(result.Output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Inside, result.CacheHit)
	if result.Degenerate.Any() {
		printWarning("Layout collapsed on the %s axis; labels share one line", degenerateAxes(result.Degenerate))
	}
	if !opts.Seeded {
		printDetail("seed %d", result.Seed)
		printNextStep("Reproduce with", fmt.Sprintf("%s render --seed %d", appName, result.Seed))
	}
	return nil
}

func degenerateAxes(d coords.Degenerate) string {
	var axes []string
	if d.X {
		axes = append(axes, "x")
	}
	if d.Y {
		axes = append(axes, "y")
	}
	return strings.Join(axes, " and ")
}
