// Package cli implements the symbolator command-line interface.
//
// # Commands
//
//   - render: draw symbols for every entity found in HDL files or directories
//   - inspect: list the ports and generics of each entity as a table
//   - serve: run the HTTP render service
//   - cache: manage the artifact cache
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and retrieved with loggerFromContext.
//
// # Configuration
//
// An optional TOML file (--config, else the user config directory) supplies
// layout, font and output defaults. Flags given explicitly override it.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/niosHD/symbolator/pkg/buildinfo"
	"github.com/niosHD/symbolator/pkg/cache"
	"github.com/niosHD/symbolator/pkg/config"
	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "symbolator"

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

	configPath string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	version, _, _ := buildinfo.Get()
	root := &cobra.Command{
		Use:          appName,
		Short:        "Symbolator draws component symbols for HDL modules",
		Long:         `Symbolator reads VHDL, Verilog and SystemVerilog sources and draws a schematic symbol for each entity or module: pins grouped into sections, with bus widths, clock and active-low markers.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, newKeyer(), loggerFromContext(ctx)), nil
}

// newCache opens the backend selected in the config file. An unusable
// file cache directory degrades to no caching; an unreachable Redis is an
// error since it was asked for explicitly.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config.Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.RedisURL, Prefix: appName + ":"})
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "open redis cache")
		}
		return rc, nil
	}

	dir, err := c.fileCacheDir()
	if err != nil {
		loggerFromContext(ctx).Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Warn("cache directory unusable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newKeyer scopes cache keys by release so that an upgraded renderer never
// serves artifacts drawn by an older one.
func newKeyer() cache.Keyer {
	version, _, _ := buildinfo.Get()
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), version+":")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/symbolator/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// fileCacheDir is the configured file cache directory, or cacheDir.
func (c *CLI) fileCacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cacheDir()
}
