package pipeline

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
	"github.com/niosHD/symbolator/pkg/hdl/parse"
	hdlio "github.com/niosHD/symbolator/pkg/io"
	"github.com/niosHD/symbolator/pkg/observability"
)

// Job is one entity to render.
type Job struct {
	ID        uuid.UUID
	Seq       int // position in the run, for stable reporting
	Source    string
	Component hdl.Component
	// Dest is the output path. Empty means Options.Stdout.
	Dest string
}

// Jobs returns the render jobs for opts in source order. Files are
// discovered and parsed lazily as the sequence is consumed, and each range
// over the sequence starts over from the first input.
//
// A parse or conversion failure is yielded as an error; the consumer
// decides whether to continue.
func Jobs(ctx context.Context, opts Options) iter.Seq2[Job, error] {
	return func(yield func(Job, error) bool) {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			yield(Job{}, err)
			return
		}
		seq := 0
		emit := func(source string, comps []hdl.Component) bool {
			for _, comp := range comps {
				job := Job{
					ID:        uuid.New(),
					Seq:       seq,
					Source:    source,
					Component: comp,
					Dest:      destination(source, comp.Name, len(comps), opts),
				}
				seq++
				if !yield(job, nil) {
					return false
				}
			}
			return true
		}

		for _, in := range opts.Inputs {
			if in == "-" {
				comps, err := parseSource(ctx, StdinSource, opts.Source, opts)
				if err != nil {
					if !yield(Job{}, err) {
						return
					}
					continue
				}
				if !emit(StdinSource, comps) {
					return
				}
				continue
			}

			files, err := discover(in, opts)
			if err != nil {
				if !yield(Job{}, err) {
					return
				}
				continue
			}
			for _, f := range files {
				if ctx.Err() != nil {
					yield(Job{}, ctx.Err())
					return
				}
				comps, err := parsePath(ctx, f, opts)
				if err != nil {
					if !yield(Job{}, err) {
						return
					}
					continue
				}
				if !emit(f, comps) {
					return
				}
			}
		}
	}
}

// discover lists the files of one input. With an explicit language a
// single file is taken regardless of its extension. Component JSON files
// are only read when named directly.
func discover(in string, opts Options) ([]string, error) {
	if opts.Lang != "" || isComponentJSON(in) {
		if info, err := os.Stat(in); err == nil && !info.IsDir() {
			return []string{in}, nil
		}
	}
	files, err := parse.Discover(in)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		opts.Logger.Warn("no HDL sources found", "input", in)
	}
	return files, nil
}

func isComponentJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func parsePath(ctx context.Context, path string, opts Options) ([]hdl.Component, error) {
	if opts.Lang == "" && isComponentJSON(path) {
		return importComponents(ctx, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", path)
	}
	return parseSource(ctx, path, src, opts)
}

// importComponents reads already extracted interfaces.
func importComponents(ctx context.Context, path string) ([]hdl.Component, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, path)
	start := time.Now()
	comps, err := hdlio.ImportJSON(path)
	hooks.OnParseComplete(ctx, path, len(comps), time.Since(start), err)
	return comps, err
}

// parseSource parses and converts every entity of one source.
func parseSource(ctx context.Context, source string, src []byte, opts Options) ([]hdl.Component, error) {
	lang, ok := parse.Detect(source)
	if opts.Lang != "" {
		lang, _ = parse.ParseLanguage(opts.Lang)
		ok = true
	}
	if !ok {
		return nil, nil
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()
	ents, err := parse.Parse(lang, src)
	hooks.OnParseComplete(ctx, source, len(ents), time.Since(start), err)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "%s", source)
	}
	opts.Logger.Debug("parsed source", "file", source, "entities", len(ents), "duration", time.Since(start))

	conv := hdl.ConvertOptions{
		Policy: opts.TypePolicy(),
		OnDegrade: func(entity, param string, err error) {
			opts.Logger.Warn("dropping unsupported type", "file", source, "entity", entity, "param", param, "err", err)
			hooks.OnTypeDegraded(ctx, entity, param)
		},
	}
	comps := make([]hdl.Component, 0, len(ents))
	for _, ent := range ents {
		comp, err := hdl.Convert(ent, conv)
		if err != nil {
			code := errs.GetCode(err)
			if code == "" {
				code = errs.ErrCodeInternal
			}
			return nil, errs.Wrap(code, err, "%s", source)
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

// destination names the artifact of one entity: "<base>-<entity>.<format>"
// inside the output directory, or the output path itself when it names a
// file and the source has exactly one entity.
func destination(source, entity string, count int, opts Options) string {
	if opts.outputFile() && count == 1 && len(opts.Inputs) == 1 {
		return opts.Output
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if source == StdinSource {
		if opts.Output == "" {
			return ""
		}
		base = "stdin"
	}
	name := base + "-" + entity + "." + opts.Format
	if opts.Output != "" && !opts.outputFile() {
		return filepath.Join(opts.Output, name)
	}
	return filepath.Join(filepath.Dir(opts.Output), name)
}
