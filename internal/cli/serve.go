package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
	"github.com/niosHD/symbolator/pkg/hdl/parse"
	"github.com/niosHD/symbolator/pkg/observability"
	"github.com/niosHD/symbolator/pkg/pipeline"
)

const (
	defaultAddr    = ":8080"
	maxSourceBytes = 4 << 20
)

// serveCommand runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve symbols over HTTP",
		Long: `Run an HTTP service that draws symbols from posted HDL source.

  POST /render/{format}?lang=vhdl&entity=fifo&title=1&no_type=1&scale=2&transparent=1
  GET  /healthz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(runner, c.renderDefaults(), logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or write the artifact cache")
	return cmd
}

// renderDefaults are the config file settings applied to every request.
func (c *CLI) renderDefaults() pipeline.Options {
	out := c.config.Output
	opts := pipeline.Options{
		Scale:       out.Scale,
		Transparent: out.Transparent,
		EmbedFonts:  out.EmbedFonts,
		Title:       out.Title,
		NoType:      out.NoType,
		StrictTypes: out.StrictTypes,
		CacheTTL:    c.config.Cache.TTL,
		Style:       c.config.Style(),
	}
	if bg, ok := c.config.Background(); ok {
		opts.Background = bg
	}
	return opts
}

// server handles render requests.
type server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
}

// newRouter builds the service routes.
func newRouter(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) http.Handler {
	s := &server{runner: runner, defaults: defaults, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Post("/render/{format}", s.render)
	return r
}

// observe logs each request and reports it to the HTTP hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func (s *server) render(w http.ResponseWriter, r *http.Request) {
	opts := s.defaults
	opts.Format = pipeline.NormalizeFormat(chi.URLParam(r, "format"))
	opts.Logger = s.logger
	if err := applyQuery(&opts, r); err != nil {
		s.fail(w, err)
		return
	}
	if err := opts.ValidateForRender(); err != nil {
		s.fail(w, err)
		return
	}

	lang, err := parse.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		s.fail(w, err)
		return
	}
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSourceBytes))
	if err != nil {
		s.fail(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body"))
		return
	}

	comp, err := selectComponent(r.Context(), src, lang, r.URL.Query().Get("entity"), opts)
	if err != nil {
		s.fail(w, err)
		return
	}

	data, cached, err := s.runner.RenderComponent(r.Context(), comp, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[opts.Format])
	w.Header().Set("X-Symbolator-Entity", comp.Name)
	w.Header().Set("X-Symbolator-Cache", strconv.FormatBool(cached))
	_, _ = w.Write(data)
}

// applyQuery reads boolean and numeric render options from the URL query.
func applyQuery(opts *pipeline.Options, r *http.Request) error {
	q := r.URL.Query()
	bools := []struct {
		name string
		dst  *bool
	}{
		{"title", &opts.Title},
		{"no_type", &opts.NoType},
		{"transparent", &opts.Transparent},
		{"embed_fonts", &opts.EmbedFonts},
		{"strict_types", &opts.StrictTypes},
	}
	for _, b := range bools {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidInput, "invalid %s: %q", b.name, v)
		}
		*b.dst = parsed
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidInput, "invalid scale: %q", v)
		}
		opts.Scale = scale
	}
	return nil
}

// selectComponent parses src and converts the named entity, or the first
// one when name is empty.
func selectComponent(ctx context.Context, src []byte, lang hdl.Language, name string, opts pipeline.Options) (hdl.Component, error) {
	ents, err := parse.Parse(lang, src)
	if err != nil {
		return hdl.Component{}, errs.Wrap(errs.ErrCodeParse, err, "parse source")
	}
	if len(ents) == 0 {
		return hdl.Component{}, errs.New(errs.ErrCodeEntityNotFound, "no entity in source")
	}
	ent := ents[0]
	if name != "" {
		found := false
		for _, e := range ents {
			if e.Name == name {
				ent, found = e, true
				break
			}
		}
		if !found {
			return hdl.Component{}, errs.New(errs.ErrCodeEntityNotFound, "entity %q not found", name)
		}
	}
	return hdl.Convert(ent, hdl.ConvertOptions{
		Policy: opts.TypePolicy(),
		OnDegrade: func(entity, param string, err error) {
			opts.Logger.Warn("dropping unsupported type", "entity", entity, "param", param, "err", err)
			observability.Pipeline().OnTypeDegraded(ctx, entity, param)
		},
	})
}

// fail maps coded errors to HTTP statuses.
func (s *server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeParse,
		errs.ErrCodeUnsupportedTypeExpression:
		status = http.StatusBadRequest
	case errs.ErrCodeEntityNotFound:
		status = http.StatusNotFound
	case errs.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	default:
		s.logger.Error("render failed", "err", err)
	}
	http.Error(w, errs.UserMessage(err), status)
}
