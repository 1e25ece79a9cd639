// Package config loads the optional symbolator TOML configuration file.
//
// The file mirrors the command line: every key has a flag of the same
// meaning, and flags given explicitly win over the file. A missing file is
// not an error; unknown keys are, so that typos do not pass silently.
//
//	[layout]
//	width_quantum = 20
//	pin_length = 20
//
//	[fonts]
//	label_size = 12
//	highlight = "#039be5"
//
//	[output]
//	format = "png"
//	scale = 2
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/niosHD/symbolator/pkg/canvas"
	errs "github.com/niosHD/symbolator/pkg/errors"
	"github.com/niosHD/symbolator/pkg/symbol"
)

// Config is the decoded configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Fonts  Fonts  `toml:"fonts"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
}

// Layout overrides geometric constants of [symbol.Style]. Zero keeps the default.
type Layout struct {
	WidthQuantum   float64 `toml:"width_quantum"`
	SymbolSpacing  float64 `toml:"symbol_spacing"`
	RowSpacing     float64 `toml:"row_spacing"`
	SectionPadding float64 `toml:"section_padding"`
	PinLength      float64 `toml:"pin_length"`
	PinPadding     float64 `toml:"pin_padding"`
	OutlineWeight  float64 `toml:"outline_weight"`
	BusWeight      float64 `toml:"bus_weight"`
}

// Fonts overrides text sizes, families and colors.
type Fonts struct {
	Family    string  `toml:"family"`
	LabelSize float64 `toml:"label_size"`
	NameSize  float64 `toml:"name_size"`
	TitleSize float64 `toml:"title_size"`
	Highlight string  `toml:"highlight"`
	TypeColor string  `toml:"type_color"`
}

// Output holds defaults for the render flags.
type Output struct {
	Format      string  `toml:"format"`
	Scale       float64 `toml:"scale"`
	Transparent bool    `toml:"transparent"`
	EmbedFonts  bool    `toml:"embed_fonts"`
	Background  string  `toml:"background"`
	Title       bool    `toml:"title"`
	NoType      bool    `toml:"no_type"`
	StrictTypes bool    `toml:"strict_types"`
	Jobs        int     `toml:"jobs"`
}

// Cache selects and configures the artifact cache backend.
type Cache struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultPath returns $XDG_CONFIG_HOME/symbolator/config.toml (or the
// platform equivalent), or "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "symbolator", "config.toml")
}

// Load decodes the file at path. An empty path loads [DefaultPath] if it
// exists and returns a zero Config otherwise; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Config{}, nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidPath, err, "config file %s", path)
	}
	return decode(path, string(data))
}

// Parse decodes configuration text. It applies the same checks as Load.
func Parse(data string) (Config, error) {
	return decode("config", data)
}

func decode(name, data string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"layout.width_quantum", c.Layout.WidthQuantum},
		{"layout.symbol_spacing", c.Layout.SymbolSpacing},
		{"layout.row_spacing", c.Layout.RowSpacing},
		{"layout.section_padding", c.Layout.SectionPadding},
		{"layout.pin_length", c.Layout.PinLength},
		{"layout.pin_padding", c.Layout.PinPadding},
		{"layout.outline_weight", c.Layout.OutlineWeight},
		{"layout.bus_weight", c.Layout.BusWeight},
		{"fonts.label_size", c.Fonts.LabelSize},
		{"fonts.name_size", c.Fonts.NameSize},
		{"fonts.title_size", c.Fonts.TitleSize},
		{"output.scale", c.Output.Scale},
	} {
		if f.v < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must not be negative (got %g)", f.name, f.v)
		}
	}
	if c.Output.Jobs < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "output.jobs must not be negative (got %d)", c.Output.Jobs)
	}
	switch c.Cache.Backend {
	case "", BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend must be file, redis or none (got %q)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	for _, f := range [][2]string{{"fonts.highlight", c.Fonts.Highlight}, {"fonts.type_color", c.Fonts.TypeColor}, {"output.background", c.Output.Background}} {
		if f[1] == "" {
			continue
		}
		if _, err := colorful.Hex(f[1]); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s: %q is not a #rrggbb color", f[0], f[1])
		}
	}
	return nil
}

// Style returns the symbol style with the file's overrides applied on top
// of [symbol.DefaultStyle].
func (c Config) Style() symbol.Style {
	st := symbol.DefaultStyle()
	set := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	set(&st.WidthQuantum, c.Layout.WidthQuantum)
	set(&st.SymbolSpacing, c.Layout.SymbolSpacing)
	set(&st.RowSpacing, c.Layout.RowSpacing)
	set(&st.SectionPadding, c.Layout.SectionPadding)
	set(&st.PinLength, c.Layout.PinLength)
	set(&st.PinPadding, c.Layout.PinPadding)
	set(&st.OutlineWeight, c.Layout.OutlineWeight)
	set(&st.BusWeight, c.Layout.BusWeight)

	set(&st.LabelFont.Size, c.Fonts.LabelSize)
	set(&st.SectionFont.Size, c.Fonts.NameSize)
	set(&st.TitleFont.Size, c.Fonts.TitleSize)
	if c.Fonts.Family != "" {
		st.LabelFont.Family = c.Fonts.Family
		st.SectionFont.Family = c.Fonts.Family
		st.TitleFont.Family = c.Fonts.Family
	}
	if col, ok := hexColor(c.Fonts.Highlight); ok {
		st.HighlightColor = col
	}
	if col, ok := hexColor(c.Fonts.TypeColor); ok {
		st.TypeColor = col
	}
	return st
}

// Background returns the output background color, if one is set.
func (c Config) Background() (color.RGBA, bool) {
	return hexColor(c.Output.Background)
}

func hexColor(s string) (color.RGBA, bool) {
	if s == "" {
		return color.RGBA{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b := c.RGB255()
	return canvas.RGB(r, g, b), true
}
