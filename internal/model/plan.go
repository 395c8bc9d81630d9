package model

// Zone is a merged set of same-height rooms sharing one continuous
// ceiling plan, admissible only when the height grouper's area-efficiency
// test passes.
type Zone struct {
	ID      string   `json:"id"`
	RoomIDs []string `json:"room_ids"`
	Height  float64  `json:"height"`
}

// StrategyName identifies one of the four candidate orientation
// strategies the evaluator ranks.
type StrategyName string

const (
	StrategyAllHorizontal StrategyName = "all_horizontal"
	StrategyAllVertical   StrategyName = "all_vertical"
	StrategyRoomOptimal   StrategyName = "room_optimal"   // ceiling only
	StrategyProjectMerged StrategyName = "project_merged" // ceiling only
)

// OrientationStrategy is the caller-facing selection knob; Auto defers to
// the evaluator's recommendation.
type OrientationStrategy string

const (
	StrategyAuto            OrientationStrategy = "Auto"
	StrategyAllHorizontalIn OrientationStrategy = "AllHorizontal"
	StrategyAllVerticalIn   OrientationStrategy = "AllVertical"
	StrategyRoomOptimalIn   OrientationStrategy = "RoomOptimal"
	StrategyProjectMergedIn OrientationStrategy = "ProjectMerged"
)

// GenerationParams is the caller-supplied input to Generate.
type GenerationParams struct {
	OrientationStrategy   OrientationStrategy    `json:"orientation_strategy"`
	PanelWidth            float64                `json:"panel_width"`
	PanelLength           LengthMode             `json:"panel_length"`
	CustomPanelLength     float64                `json:"custom_panel_length,omitempty"`
	ThicknessOverride     *float64               `json:"thickness_override,omitempty"`
	RoomSpecificOverrides map[string]Orientation `json:"room_specific_overrides,omitempty"`
}

// Spec derives a normalized PanelSpec from the generation params.
func (p GenerationParams) Spec(kind PlanKind) PanelSpec {
	s := PanelSpec{
		MaxWidth:     p.PanelWidth,
		LengthMode:   p.PanelLength,
		CustomLength: p.CustomPanelLength,
	}
	if p.ThicknessOverride != nil {
		s.Thickness = *p.ThicknessOverride
	}
	return s.Normalize(kind)
}

// Plan is the persisted winning layout for one Room (or Zone), plus the
// parameters that produced it, so regeneration can reproduce or vary it.
// A Plan is attached to exactly one Room XOR one Zone.
type Plan struct {
	ID               string           `json:"id"`
	Kind             PlanKind         `json:"kind"`
	RoomID           string           `json:"room_id,omitempty"`
	ZoneID           string           `json:"zone_id,omitempty"`
	Thickness        float64          `json:"thickness"` // ceiling_thickness|floor_thickness
	OrientationStrategy OrientationStrategy `json:"orientation_strategy"`
	PanelWidth       float64          `json:"panel_width"`
	PanelLength      LengthMode       `json:"panel_length"`
	CustomPanelLength float64         `json:"custom_panel_length,omitempty"`
	SupportType      string           `json:"support_type,omitempty"`
	SupportConfig    map[string]any   `json:"support_config,omitempty"`
	Panels           []Panel          `json:"panels"`
	Stats            RoomSummary      `json:"stats"`
}
