package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateFloorCmd() *cobra.Command {
	var flags commonFlags
	var gen generateFlags

	cmd := &cobra.Command{
		Use:   "generate-floor",
		Short: "Generate and persist a floor panel plan for every eligible room in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := gen.toParams(cmd)
			if err != nil {
				return err
			}

			s, err := openStore(flags)
			if err != nil {
				return err
			}
			engine := newEngine(s)

			report, err := engine.GenerateFloor(ctx(), flags.projectID, params)
			if err != nil {
				return fmt.Errorf("generate floor: %w", err)
			}
			return writeResult(flags.outPath, report)
		},
	}

	addCommonFlags(cmd, &flags)
	addGenerateFlags(cmd, &gen)
	return cmd
}
