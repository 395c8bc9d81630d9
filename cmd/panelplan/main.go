// panelplan: ceiling/floor panel layout engine.
//
// A headless CLI driving the panelplan engine against a JSON project
// store, optionally seeded from a JSON or YAML room fixture: decomposes
// room outlines, tiles them with stock panels,
// tracks reusable offcuts across a project, and reports or persists the
// result. Any editor or REST layer lives in a separate collaborator.
//
// Build:
//
//	go build -o panelplan ./cmd/panelplan
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "panelplan",
		Short:         "Ceiling/floor panel layout and leftover-reuse engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAnalyzeHeightsCmd(),
		newAnalyzeOrientationsCmd(),
		newGenerateCeilingCmd(),
		newGenerateFloorCmd(),
	)
	return root
}
