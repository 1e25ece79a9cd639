package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/niosHD/symbolator/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	inputs      []string // files or directories; "-" reads stdin
	lang        string   // language for stdin or unrecognized extensions
	output      string   // output directory, or file for a single entity
	format      string   // svg, png, pdf, ps, eps or json
	scale       float64  // output scale factor
	transparent bool     // transparent background
	embedFonts  bool     // embed the label fonts in SVG output
	title       bool     // draw the entity name above the symbol
	noType      bool     // omit pin types
	strictTypes bool     // fail on unsupported type expressions
	jobs        int      // parallel renders
	noCache     bool     // bypass the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file|dir|-]...",
		Short: "Draw symbols for HDL entities",
		Long: `Draw one symbol per entity or module found in the inputs.

Directories are searched recursively for .vhd, .vhdl, .v, .vlog and .sv
files. Each symbol is written as <source-base>-<entity>.<format> in the
output directory; a single entity may be written to an explicit file.
Use "-" to read source from stdin (requires --lang).`,
		Example: `  symbolator render rtl/ -o symbols/
  symbolator render fifo.vhd -f png --scale 2 -o fifo.png
  cat counter.v | symbolator render - --lang verilog > counter.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.inputs = append(flags.inputs, args...)
			opts, err := c.renderOptions(cmd, flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd, opts, flags.noCache)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.inputs, "input", "i", nil, "HDL source file or directory (repeatable)")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "source language: vhdl, verilog, systemverilog")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory or file")
	cmd.Flags().StringVarP(&flags.format, "format", "f", pipeline.DefaultFormat, "output format: svg, png, pdf, ps, eps, json")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "scale image")
	cmd.Flags().BoolVarP(&flags.transparent, "transparent", "t", false, "transparent background")
	cmd.Flags().BoolVar(&flags.embedFonts, "embed-fonts", false, "embed fonts in SVG output so labels render identically everywhere")
	cmd.Flags().BoolVar(&flags.title, "title", false, "add component name above symbol")
	cmd.Flags().BoolVar(&flags.noType, "no-type", false, "omit pin type information")
	cmd.Flags().BoolVar(&flags.strictTypes, "strict-types", false, "fail on type expressions that cannot be drawn")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", pipeline.DefaultJobs, "number of symbols rendered in parallel")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "do not read or write the artifact cache")

	return cmd
}

// renderOptions merges flags with the config file. A flag given on the
// command line wins; otherwise a non-zero config value does.
func (c *CLI) renderOptions(cmd *cobra.Command, flags renderFlags) (pipeline.Options, error) {
	out := c.config.Output
	opts := pipeline.Options{
		Inputs:      flags.inputs,
		Lang:        flags.lang,
		Output:      flags.output,
		Format:      pick(cmd, "format", flags.format, out.Format),
		Scale:       pick(cmd, "scale", flags.scale, out.Scale),
		Transparent: pick(cmd, "transparent", flags.transparent, out.Transparent),
		EmbedFonts:  pick(cmd, "embed-fonts", flags.embedFonts, out.EmbedFonts),
		Title:       pick(cmd, "title", flags.title, out.Title),
		NoType:      pick(cmd, "no-type", flags.noType, out.NoType),
		StrictTypes: pick(cmd, "strict-types", flags.strictTypes, out.StrictTypes),
		Jobs:        pick(cmd, "jobs", flags.jobs, out.Jobs),
		CacheTTL:    c.config.Cache.TTL,
		Style:       c.config.Style(),
		Stdout:      cmd.OutOrStdout(),
		Logger:      loggerFromContext(cmd.Context()),
	}
	if bg, ok := c.config.Background(); ok {
		opts.Background = bg
	}

	for _, in := range opts.Inputs {
		if in != "-" {
			continue
		}
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return opts, fmt.Errorf("read stdin: %w", err)
		}
		opts.Source = src
		break
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// pick returns the flag value when it was set explicitly or when the
// config leaves the setting at its zero value.
func pick[T comparable](cmd *cobra.Command, name string, flag, conf T) T {
	var zero T
	if cmd.Flags().Changed(name) || conf == zero {
		return flag
	}
	return conf
}

func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	results, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		logger.Warn("no entities found", "inputs", opts.Inputs)
		return nil
	}

	toStdout := false
	for _, res := range results {
		if res.Job.Dest == "" {
			toStdout = true
			continue
		}
		printSuccess("Created symbol for %s %s", res.Job.Source, StyleHighlight.Render(res.Job.Component.Name))
		printFile(res.Job.Dest)
		fmt.Println(statsLine(len(res.Job.Component.Ports), len(res.Job.Component.Generics), res.Cached))
	}
	if !toStdout {
		prog.done(fmt.Sprintf("Rendered %s", plural(len(results), "symbol")))
	}
	return nil
}
