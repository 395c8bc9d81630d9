package main

import (
	"fmt"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/spf13/cobra"
)

func newAnalyzeOrientationsCmd() *cobra.Command {
	var flags commonFlags
	var kind string
	var panelWidth float64
	var panelLength string
	var customLength float64

	cmd := &cobra.Command{
		Use:   "analyze-orientations",
		Short: "Rank candidate orientation strategies for a project without persisting anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			planKind := model.PlanKind(kind)
			if planKind != model.PlanKindCeiling && planKind != model.PlanKindFloor {
				return fmt.Errorf("invalid --kind %q, want Ceiling or Floor", kind)
			}

			s, err := openStore(flags)
			if err != nil {
				return err
			}
			engine := newEngine(s)

			params := model.GenerationParams{
				PanelWidth:        panelWidth,
				PanelLength:       model.LengthMode(panelLength),
				CustomPanelLength: customLength,
			}
			results, err := engine.AnalyzeOrientations(ctx(), flags.projectID, planKind, params.Spec(planKind))
			if err != nil {
				return fmt.Errorf("analyze orientations: %w", err)
			}
			return writeResult(flags.outPath, results)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVar(&kind, "kind", "Ceiling", "plan kind: Ceiling or Floor")
	cmd.Flags().Float64Var(&panelWidth, "panel-width", 0, "panel width in mm (0 = material default)")
	cmd.Flags().StringVar(&panelLength, "panel-length", "Auto", "panel length mode: Auto or Custom")
	cmd.Flags().Float64Var(&customLength, "custom-length", 0, "custom panel length in mm, required when --panel-length=Custom")
	return cmd
}
