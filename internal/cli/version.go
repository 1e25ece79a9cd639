package cli

import (
	"github.com/spf13/cobra"

	"github.com/niosHD/symbolator/pkg/buildinfo"
	"github.com/niosHD/symbolator/pkg/canvas"
)

// versionCommand prints build information and optional tool support.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, commit, date := buildinfo.Get()
			printKeyValue("version", v)
			printKeyValue("commit", commit)
			printKeyValue("built", date)

			rsvg := "not found (pdf, ps and eps unavailable)"
			if canvas.HasRSVG() {
				rsvg = "available"
			}
			printKeyValue("rsvg-convert", rsvg)
			return nil
		},
	}
}
