package main

import (
	"fmt"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/spf13/cobra"
)

// generateFlags collects the GenerationParams knobs as CLI flags, shared
// by generate-ceiling and generate-floor.
type generateFlags struct {
	strategy          string
	panelWidth        float64
	panelLength       string
	customLength      float64
	thicknessOverride float64
	hasThickness      bool
	roomOverrides     []string
}

func addGenerateFlags(cmd *cobra.Command, f *generateFlags) {
	cmd.Flags().StringVar(&f.strategy, "strategy", "Auto",
		"orientation strategy: Auto, AllHorizontal, AllVertical, RoomOptimal, ProjectMerged")
	cmd.Flags().Float64Var(&f.panelWidth, "panel-width", 0, "panel width in mm (0 = material default)")
	cmd.Flags().StringVar(&f.panelLength, "panel-length", "Auto", "panel length mode: Auto or Custom")
	cmd.Flags().Float64Var(&f.customLength, "custom-length", 0, "custom panel length in mm, required when --panel-length=Custom")
	cmd.Flags().Float64Var(&f.thicknessOverride, "thickness-override", 0, "override material thickness in mm")
	cmd.Flags().StringArrayVar(&f.roomOverrides, "room-override", nil,
		"per-room orientation override as room_id=Horizontal|Vertical, repeatable")
}

func (f generateFlags) toParams(cmd *cobra.Command) (model.GenerationParams, error) {
	params := model.GenerationParams{
		OrientationStrategy: model.OrientationStrategy(f.strategy),
		PanelWidth:          f.panelWidth,
		PanelLength:         model.LengthMode(f.panelLength),
		CustomPanelLength:   f.customLength,
	}

	if cmd.Flags().Changed("thickness-override") {
		t := f.thicknessOverride
		params.ThicknessOverride = &t
	}

	if len(f.roomOverrides) > 0 {
		params.RoomSpecificOverrides = make(map[string]model.Orientation, len(f.roomOverrides))
		for _, entry := range f.roomOverrides {
			roomID, orientation, ok := splitOverride(entry)
			if !ok {
				return params, fmt.Errorf("invalid --room-override %q, want room_id=Horizontal|Vertical", entry)
			}
			params.RoomSpecificOverrides[roomID] = model.Orientation(orientation)
		}
	}

	return params, nil
}

func splitOverride(entry string) (roomID, orientation string, ok bool) {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:], true
		}
	}
	return "", "", false
}
