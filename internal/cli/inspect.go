package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/niosHD/symbolator/pkg/hdl"
	hdlio "github.com/niosHD/symbolator/pkg/io"
	"github.com/niosHD/symbolator/pkg/pipeline"
)

// inspectCommand lists the interface of every entity without drawing it.
func (c *CLI) inspectCommand() *cobra.Command {
	var lang string
	var strict, asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [file|dir]...",
		Short: "List the ports and generics of HDL entities",
		Long: `List the ports and generics of HDL entities.

With --json the interfaces are written to stdout in the component JSON
format, which render accepts as input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Inputs:      args,
				Lang:        lang,
				StrictTypes: strict,
				Logger:      loggerFromContext(cmd.Context()),
			}
			var comps []hdl.Component
			for job, err := range pipeline.Jobs(cmd.Context(), opts) {
				if err != nil {
					return err
				}
				comps = append(comps, job.Component)
				if asJSON {
					continue
				}
				printInfo("%s %s", StyleTitle.Render(job.Component.Name), StyleDim.Render(job.Source))
				fmt.Println(interfaceTable(job.Component))
			}
			if asJSON {
				return hdlio.WriteJSON(cmd.OutOrStdout(), comps)
			}
			if len(comps) == 0 {
				printWarning("No entities found")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "source language: vhdl, verilog, systemverilog")
	cmd.Flags().BoolVar(&strict, "strict-types", false, "fail on type expressions that cannot be drawn")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write interfaces as component JSON")
	return cmd
}

// interfaceTable renders generics then ports, one row each, with the
// section label in effect for each port.
func interfaceTable(comp hdl.Component) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	kindStyle := lipgloss.NewStyle().Foreground(colorDim)

	var rows [][]string
	for _, g := range comp.Generics {
		rows = append(rows, []string{"generic", g.Name, string(g.Mode), g.DataType, g.DefaultValue, ""})
	}
	section := ""
	for i, p := range comp.Ports {
		if label, ok := comp.Sections[i]; ok {
			section = label
		}
		rows = append(rows, []string{"port", p.Name, string(p.Mode), p.DataType, p.DefaultValue, section})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Mode", "Type", "Default", "Section").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return kindStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String()
}
