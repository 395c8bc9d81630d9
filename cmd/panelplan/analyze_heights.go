package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAnalyzeHeightsCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "analyze-heights",
		Short: "Group a project's rooms by ceiling height and report merge-admissible zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(flags)
			if err != nil {
				return err
			}
			engine := newEngine(s)

			analysis, err := engine.AnalyzeHeights(ctx(), flags.projectID)
			if err != nil {
				return fmt.Errorf("analyze heights: %w", err)
			}
			return writeResult(flags.outPath, analysis)
		},
	}

	addCommonFlags(cmd, &flags)
	return cmd
}
