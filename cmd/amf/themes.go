package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/amf"
)

func newThemesCmd() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:           "themes",
		Short:         "List available themes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := amf.AvailableThemes()
			if !preview || !isTerminal(os.Stdout) {
				for _, name := range names {
					fmt.Fprintln(os.Stdout, name)
				}
				return nil
			}
			sample := "## Heading **bold** *italic* `code` [link](https://example.com) $x^2$"
			width := terminalWidth(defaultWidth)
			for _, name := range names {
				theme, _ := amf.ThemeByName(name)
				rend := amf.NewRenderer(theme, width)
				fmt.Fprintf(os.Stdout, "%s\n%s\n\n", name, rend.RenderMarkdown(sample))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Render a sample line in each theme")
	return cmd
}
