package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCeilingCmd() *cobra.Command {
	var flags commonFlags
	var gen generateFlags

	cmd := &cobra.Command{
		Use:   "generate-ceiling",
		Short: "Generate and persist a ceiling panel plan for every eligible room in a project",
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

			report, err := engine.GenerateCeiling(ctx(), flags.projectID, params)
			if err != nil {
				return fmt.Errorf("generate ceiling: %w", err)
			}
			return writeResult(flags.outPath, report)
		},
	}

	addCommonFlags(cmd, &flags)
	addGenerateFlags(cmd, &gen)
	return cmd
}
