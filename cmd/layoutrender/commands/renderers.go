package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/layoutrender/internal/renderer"
)

// RenderersCmd implements the 'renderers' command.
type RenderersCmd struct{}

func (r *RenderersCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	reg, err := renderer.NewFromConfig(cfg.Markdown)
	if err != nil {
		return err
	}
	return PrintRenderers(os.Stdout, reg)
}

// PrintRenderers writes one row per registered extension.
func PrintRenderers(w io.Writer, reg *renderer.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXTENSION\tOUTPUT\tCONVERTER")
	for _, ext := range reg.Extensions() {
		c, _ := reg.Lookup(ext)
		fmt.Fprintf(tw, "%s\t%s\t%T\n", ext, reg.OutputExt(ext), c)
	}
	return tw.Flush()
}
