// Package cli implements the pigeon command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pigeon/pkg/buildinfo"
	"github.com/matzehuels/pigeon/pkg/cache"
	"github.com/matzehuels/pigeon/pkg/observability"
	"github.com/matzehuels/pigeon/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "pigeon"

	// defaultCacheDir keeps preprocessed_<algorithm>.json next to the run.
	defaultCacheDir = "."
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// verbose reports whether debug logging is on.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pigeon lays out a graph and draws its labels inside a silhouette",
		Long: `Pigeon computes a force-directed layout for a graph of links, stretches it
over a reference image, and writes a PNG where every node is a text label.
Labels that land on the dark part of the image are drawn bold, so the
silhouette emerges from the type.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := &logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(dir string, noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	store, err := newCache(dir, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, logger), nil
}

func newCache(dir string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
