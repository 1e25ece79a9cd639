package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niosHD/symbolator/pkg/cache"
	"github.com/niosHD/symbolator/pkg/config"
	errs "github.com/niosHD/symbolator/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Caching is disabled")
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return errs.Wrap(errs.ErrCodeInternal, err, "clear cache")
			}

			printSuccess("Cleared %d cached entries", count)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.config.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), c.config.Cache.RedisURL)
				return nil
			case config.BackendNone:
				return errs.New(errs.ErrCodeInvalidConfig, "caching is disabled in the config file")
			}
			dir, err := c.fileCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
