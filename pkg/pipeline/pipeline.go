// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP service.
//
// The pipeline has three stages, run per source file and entity:
//
//  1. Parse: read HDL source and extract entities ([parse.Parse])
//  2. Convert: flatten type expressions under the chosen [hdl.TypePolicy]
//  3. Render: build the symbol, draw it on a fresh canvas and export it
//
// # Usage
//
// Render every entity under a directory:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	results, err := runner.Run(ctx, pipeline.Options{
//	    Inputs: []string{"rtl/"},
//	    Format: "svg",
//	    Output: "symbols/",
//	})
//
// Render one component already in memory:
//
//	data, cached, err := runner.RenderComponent(ctx, comp, opts)
//
// Each render owns its canvas, marker registry and font metrics, so jobs
// can run on several goroutines (Options.Jobs) without sharing state.
package pipeline

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/niosHD/symbolator/pkg/cache"
	"github.com/niosHD/symbolator/pkg/canvas"
	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/hdl"
	"github.com/niosHD/symbolator/pkg/hdl/parse"
	"github.com/niosHD/symbolator/pkg/symbol"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP service
// =============================================================================

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = FormatSVG

	// DefaultScale is the output scale factor.
	DefaultScale = 1.0

	// DefaultJobs renders strictly sequentially.
	DefaultJobs = 1

	// DefaultCacheTTL is how long rendered artifacts stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// StdinSource names the in-memory input in logs and job sources.
	StdinSource = "<stdin>"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatPS   = "ps"
	FormatEPS  = "eps"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatPS:   true,
	FormatEPS:  true,
	FormatJSON: true,
}

// ContentTypes maps each output format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatPS:   "application/postscript",
	FormatEPS:  "application/postscript",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Input options. An input of "-" reads Source, parsed as Lang.
	Inputs []string `json:"inputs,omitempty"`
	Lang   string   `json:"lang,omitempty"`
	Source []byte   `json:"-"`

	// Output options. Output is a directory, or a file path when it carries
	// the format's extension and the input yields a single entity. For
	// in-memory input an empty Output writes to Stdout.
	Format      string     `json:"format,omitempty"`
	Output      string     `json:"output,omitempty"`
	Stdout      io.Writer  `json:"-"`
	Scale       float64    `json:"scale,omitempty"`
	Transparent bool       `json:"transparent,omitempty"`
	EmbedFonts  bool       `json:"embed_fonts,omitempty"` // SVG only
	// Background replaces the white page color; ignored when its alpha is 0.
	Background  color.RGBA `json:"-"`

	// Symbol options
	Title       bool         `json:"title,omitempty"`
	NoType      bool         `json:"no_type,omitempty"`
	StrictTypes bool         `json:"strict_types,omitempty"`
	Style       symbol.Style `json:"-"`

	// Runtime options (not serialized)
	Jobs     int           `json:"-"`
	CacheTTL time.Duration `json:"-"`
	Logger   *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, ps, eps, json)", format)
	}
	return nil
}

// NeedsRSVG reports whether format is converted from SVG by rsvg-convert.
func NeedsRSVG(format string) bool {
	switch format {
	case FormatPDF, FormatPS, FormatEPS:
		return true
	}
	return false
}

// NormalizeFormat lowercases a user supplied format name.
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if len(o.Inputs) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "no input given")
	}
	for _, in := range o.Inputs {
		if in == "-" && o.Lang == "" {
			return errs.New(errs.ErrCodeInvalidInput, "reading stdin requires a language (--lang)")
		}
	}
	if o.Lang != "" {
		if _, err := parse.ParseLanguage(o.Lang); err != nil {
			return err
		}
	}
	if o.Jobs < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "jobs must not be negative, got %d", o.Jobs)
	}
	if o.Jobs == 0 {
		o.Jobs = DefaultJobs
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	o.validated = true
	return nil
}

// ValidateForRender validates and sets the defaults needed to render a
// single component.
func (o *Options) ValidateForRender() error {
	o.Format = NormalizeFormat(o.Format)
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.Style = o.Style.Resolved()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// TypePolicy returns the conversion policy selected by StrictTypes.
func (o *Options) TypePolicy() hdl.TypePolicy {
	if o.StrictTypes {
		return hdl.TypePolicyStrict
	}
	return hdl.TypePolicyDegrade
}

// outputFile reports whether Output names a file rather than a directory.
func (o *Options) outputFile() bool {
	return o.Output != "" && strings.EqualFold(filepath.Ext(o.Output), "."+o.Format)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	var bg string
	if o.Background.A != 0 {
		bg = canvas.Hex(o.Background)
	}
	return cache.ArtifactKeyOpts{
		Format:      o.Format,
		Background:  bg,
		Scale:       o.Scale,
		Transparent: o.Transparent,
		EmbedFonts:  o.EmbedFonts && o.Format == FormatSVG,
		Title:       o.Title,
		NoType:      o.NoType,
		StyleHash:   cache.HashJSON(o.Style),
	}
}
