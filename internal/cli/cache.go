package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pigeon/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the preprocessed layout cache",
	}

	dir := defaultCacheDir
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", dir, "layout cache directory")

	cmd.AddCommand(c.cacheClearCommand(&dir))
	cmd.AddCommand(c.cachePathCommand(&dir))
	cmd.AddCommand(c.cacheListCommand(&dir))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cache.NewFileCache(*dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer fc.Close()

			count, err := fc.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached layouts", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cacheListCommand creates the "cache list" subcommand.
func (c *CLI) cacheListCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cache.NewFileCache(*dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer fc.Close()

			keys, err := fc.Keys()
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			for _, key := range keys {
				printKeyValue(strings.TrimPrefix(key, cache.KeyPrefix), fc.Path(key))
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(*dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, abs)
			return nil
		},
	}
}
