package pipeline

import (
	"context"

	"github.com/niosHD/symbolator/pkg/canvas"
	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
	"github.com/niosHD/symbolator/pkg/symbol"
)

// Render draws comp on a fresh canvas and exports it in opts.Format.
// Nothing is shared between calls, so Render is safe for concurrent use.
func Render(ctx context.Context, comp hdl.Component, opts Options) ([]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if NeedsRSVG(opts.Format) && !canvas.HasRSVG() {
		return nil, errs.New(errs.ErrCodeUnsupported,
			"%s output requires rsvg-convert (macOS: brew install librsvg, Linux: apt install librsvg2-bin)", opts.Format)
	}

	m, err := canvas.NewFaceMetrics()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "load font metrics")
	}
	sym := symbol.Build(comp, symbol.BuildOptions{
		Title:  opts.Title,
		NoType: opts.NoType,
		Style:  opts.Style,
	})
	c := symbol.Render(sym, m)

	data, err := export(ctx, c, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRender, err, "render %s as %s", comp.Name, opts.Format)
	}
	return data, nil
}

// export serializes a drawn canvas.
func export(ctx context.Context, c *canvas.Canvas, opts Options) ([]byte, error) {
	canvasOpts := []canvas.Option{canvas.WithScale(opts.Scale)}
	if opts.Transparent {
		canvasOpts = append(canvasOpts, canvas.WithTransparent())
	}
	if opts.Background.A != 0 {
		canvasOpts = append(canvasOpts, canvas.WithBackground(opts.Background))
	}

	switch opts.Format {
	case FormatSVG:
		if opts.EmbedFonts {
			canvasOpts = append(canvasOpts, canvas.WithEmbeddedFonts())
		}
		return canvas.RenderSVG(c, canvasOpts...), nil
	case FormatPNG:
		return canvas.RenderPNG(c, canvasOpts...)
	case FormatJSON:
		return canvas.RenderJSON(c, canvasOpts...)
	case FormatPDF:
		return canvas.ToPDF(ctx, canvas.RenderSVG(c, canvasOpts...))
	case FormatPS:
		return canvas.ToPS(ctx, canvas.RenderSVG(c, canvasOpts...))
	case FormatEPS:
		return canvas.ToEPS(ctx, canvas.RenderSVG(c, canvasOpts...))
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
}
