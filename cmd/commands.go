// Package cmd holds the loan-planner subcommands.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "Path to a YAML or TOML configuration file")

// Commands are registered by main in this order.
var Commands = []subcommands.Command{
	&serveCmd{},
	&simulateCmd{},
	&quoteCmd{},
}

// printMarkdown renders md for the terminal, falling back to the raw text
// when rendering fails.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(160),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Error rendering markdown: %v\n", err)
	fmt.Fprint(w, md)
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
