package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/niosHD/symbolator/pkg/cache"
	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
	"github.com/niosHD/symbolator/pkg/observability"
)

// cacheKeyType labels artifact entries in cache hooks.
const cacheKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and HTTP service use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Result describes one written artifact.
type Result struct {
	Job      Job
	Size     int
	Cached   bool
	Duration time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RenderComponent renders one component, consulting the cache first.
// The boolean reports a cache hit.
func (r *Runner) RenderComponent(ctx context.Context, comp hdl.Component, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, comp.Name, opts.Format)
	start := time.Now()

	key := r.Keyer.ArtifactKey(cache.HashJSON(comp), opts.ArtifactKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		hooks.OnRenderComplete(ctx, comp.Name, opts.Format, len(data), time.Since(start), nil)
		return data, true, nil
	} else if err != nil {
		opts.Logger.Debug("cache read failed", "entity", comp.Name, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	data, err := Render(ctx, comp, opts)
	hooks.OnRenderComplete(ctx, comp.Name, opts.Format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Debug("cache write failed", "entity", comp.Name, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return data, false, nil
}

// Run renders every job of opts and writes the artifacts. Up to opts.Jobs
// entities are rendered at once; the first failure cancels the rest.
// Results are returned in job order.
func (r *Runner) Run(ctx context.Context, opts Options) ([]Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if opts.Output != "" && !opts.outputFile() {
		if err := os.MkdirAll(opts.Output, 0o755); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "create output directory")
		}
	}

	var (
		mu      sync.Mutex
		results []Result
		stdout  sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for job, err := range Jobs(gctx, opts) {
		if err != nil {
			g.Go(func() error { return err })
			break
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			start := time.Now()
			data, cached, err := r.RenderComponent(gctx, job.Component, opts)
			if err != nil {
				return err
			}
			if job.Dest == "" {
				stdout.Lock()
				_, err = opts.Stdout.Write(data)
				stdout.Unlock()
			} else {
				err = writeFile(job.Dest, data)
			}
			if err != nil {
				return err
			}
			opts.Logger.Debug("rendered symbol",
				"file", job.Source,
				"entity", job.Component.Name,
				"dest", job.Dest,
				"cached", cached,
				"duration", time.Since(start))

			mu.Lock()
			results = append(results, Result{Job: job, Size: len(data), Cached: cached, Duration: time.Since(start)})
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	slices.SortFunc(results, func(a, b Result) int { return a.Job.Seq - b.Job.Seq })
	if err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
