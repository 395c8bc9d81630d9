// Package planner orchestrates per-room panel generation, applies
// room-specific orientation overrides, persists the winning layout
// through a Store, and rolls up project-wide statistics.
package planner

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/piwi3910/panelplan/internal/geometry"
	"github.com/piwi3910/panelplan/internal/grouper"
	"github.com/piwi3910/panelplan/internal/inventory"
	"github.com/piwi3910/panelplan/internal/model"
	"github.com/piwi3910/panelplan/internal/panelgen"
	"github.com/piwi3910/panelplan/internal/strategy"
	"github.com/piwi3910/panelplan/internal/tiler"
)

// Store is the collaborator capability the planner depends on.
// internal/store's concrete implementations satisfy this structurally.
type Store interface {
	ListRooms(ctx context.Context, projectID string) ([]model.Room, error)
	ReplacePanels(ctx context.Context, projectID, roomID string, panels []model.Panel) error
	UpsertPlan(ctx context.Context, projectID string, plan model.Plan) error
}

// Planner runs generation passes against a Store, enforcing one in-flight
// pass per project with a per-project lock.
type Planner struct {
	store Store

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a Planner backed by store.
func New(store Store) *Planner {
	return &Planner{store: store, inFlight: make(map[string]struct{})}
}

// acquire claims the per-project lock for the duration of a pass, failing
// with KindConcurrentGeneration if another pass already holds it.
func (p *Planner) acquire(projectID string) (release func(), err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[projectID]; busy {
		return nil, model.NewPlanError(model.KindConcurrentGeneration, "",
			fmt.Errorf("project %s already has a generation pass in flight", projectID))
	}
	p.inFlight[projectID] = struct{}{}
	return func() {
		p.mu.Lock()
		delete(p.inFlight, projectID)
		p.mu.Unlock()
	}, nil
}

// GenerateCeiling generates and persists the project's ceiling plans.
func (p *Planner) GenerateCeiling(ctx context.Context, projectID string, params model.GenerationParams) (model.GenerationReport, error) {
	return p.generate(ctx, projectID, model.PlanKindCeiling, params)
}

// GenerateFloor generates and persists the project's floor plans, with
// the floor-type eligibility filter applied.
func (p *Planner) GenerateFloor(ctx context.Context, projectID string, params model.GenerationParams) (model.GenerationReport, error) {
	return p.generate(ctx, projectID, model.PlanKindFloor, params)
}

func validateParams(params model.GenerationParams) error {
	if params.PanelWidth < 0 {
		return model.NewPlanError(model.KindInvalidParams, "",
			fmt.Errorf("panel_width must be positive, got %v", params.PanelWidth))
	}
	if params.PanelLength == model.LengthCustom && params.CustomPanelLength <= 0 {
		return model.NewPlanError(model.KindInvalidParams, "",
			fmt.Errorf("custom_panel_length must be positive when length_mode is Custom"))
	}
	return nil
}

func (p *Planner) generate(ctx context.Context, projectID string, kind model.PlanKind, params model.GenerationParams) (model.GenerationReport, error) {
	report := model.GenerationReport{ProjectID: projectID, PlanKind: kind}

	if err := validateParams(params); err != nil {
		return report, err
	}

	release, err := p.acquire(projectID)
	if err != nil {
		return report, err
	}
	defer release()

	rooms, err := p.store.ListRooms(ctx, projectID)
	if err != nil {
		return report, model.NewPlanError(model.KindStorageFailure, "", fmt.Errorf("listing rooms: %w", err))
	}

	eligible := eligibleSorted(rooms, kind)
	if len(eligible) == 0 {
		return report, model.NewPlanError(model.KindNoEligibleRooms, "",
			fmt.Errorf("no eligible rooms for plan kind %s", kind))
	}

	spec := params.Spec(kind)

	analysis, err := strategy.Evaluate(ctx, eligible, kind, spec)
	if err != nil {
		return report, err
	}
	report.RecommendedStrategy = analysis[0].StrategyName

	chosenStrategy, chosenOrientation, err := resolveStrategy(kind, params.OrientationStrategy, analysis)
	if err != nil {
		return report, err
	}

	if chosenStrategy == model.StrategyProjectMerged {
		return p.commitMerged(ctx, projectID, kind, params, spec, eligible, report)
	}
	return p.commitPerRoom(ctx, projectID, kind, params, spec, eligible, chosenStrategy, chosenOrientation, report)
}

// resolveStrategy maps the caller's requested OrientationStrategy (or Auto,
// which defers to the evaluator's recommendation) to a concrete StrategyName plus the
// uniform Orientation to apply (empty for per-room strategies: RoomOptimal
// decides per room, ProjectMerged decides its own single orientation
// internally).
func resolveStrategy(kind model.PlanKind, requested model.OrientationStrategy, analysis []model.StrategyResult) (model.StrategyName, model.Orientation, error) {
	find := func(name model.StrategyName) (model.StrategyResult, bool) {
		for _, r := range analysis {
			if r.StrategyName == name {
				return r, true
			}
		}
		return model.StrategyResult{}, false
	}

	switch requested {
	case "", model.StrategyAuto:
		top := analysis[0]
		return top.StrategyName, top.Orientation, nil
	case model.StrategyAllHorizontalIn:
		return model.StrategyAllHorizontal, model.Horizontal, nil
	case model.StrategyAllVerticalIn:
		return model.StrategyAllVertical, model.Vertical, nil
	case model.StrategyRoomOptimalIn:
		if kind != model.PlanKindCeiling {
			return "", "", model.NewPlanError(model.KindInvalidParams, "",
				fmt.Errorf("room_optimal orientation strategy applies to ceiling plans only"))
		}
		return model.StrategyRoomOptimal, "", nil
	case model.StrategyProjectMergedIn:
		if kind != model.PlanKindCeiling {
			return "", "", model.NewPlanError(model.KindInvalidParams, "",
				fmt.Errorf("project_merged orientation strategy applies to ceiling plans only"))
		}
		r, ok := find(model.StrategyProjectMerged)
		if !ok {
			return "", "", model.NewPlanError(model.KindInvalidParams, "",
				fmt.Errorf("project_merged strategy is not admissible for this project"))
		}
		return model.StrategyProjectMerged, r.Orientation, nil
	default:
		return "", "", model.NewPlanError(model.KindInvalidParams, "",
			fmt.Errorf("unknown orientation_strategy %q", requested))
	}
}

// commitPerRoom runs the committed ("ACTUAL") generation pass for every
// strategy except ProjectMerged: each room gets an orientation from
// params.RoomSpecificOverrides if listed, else the resolved uniform
// orientation, else (room_optimal) a per-room H/V trial, and persists each
// room's Panels and Plan as it is generated, in ascending room-id order.
// It additionally partitions rooms into independent generation passes by
// their Material(kind) grouping key (see model.Room's CeilingMaterial/
// FloorMaterial fields): each distinct non-empty material gets its own
// inventory, so offcuts of one material are never offered as a leftover
// match for a room requiring a different one, while the default
// ungrouped key ("") keeps unconditional per-project
// sharing. Counters and the final report stay pooled across groups; only
// leftover reuse is scoped per material.
func (p *Planner) commitPerRoom(ctx context.Context, projectID string, kind model.PlanKind, params model.GenerationParams, spec model.PanelSpec, rooms []model.Room, chosenStrategy model.StrategyName, chosenOrientation model.Orientation, report model.GenerationReport) (model.GenerationReport, error) {
	counter := model.NewPanelIDCounter(kind)
	invByMaterial := make(map[string]*inventory.Inventory)
	invFor := func(material string) *inventory.Inventory {
		inv, ok := invByMaterial[material]
		if !ok {
			tag := "ACTUAL"
			if material != "" {
				tag = "ACTUAL-" + material
			}
			inv = inventory.New(tag, nil)
			invByMaterial[material] = inv
		}
		return inv
	}

	var totalPanels int
	var totalRoomArea float64

	for _, room := range rooms {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		orientation, ok := roomOrientation(room, params, chosenStrategy, chosenOrientation, spec)
		if !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("room %s: degenerate polygon, skipped", room.ID))
			continue
		}

		inv := invFor(room.Material(kind))
		panels, summary, err := panelgen.GenerateRoom(room, orientation, spec, inv, counter)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("room %s: %v", room.ID, err))
			continue
		}

		plan := buildPlan(kind, room, params, spec, orientation, panels, summary)
		if err := p.persistRoom(ctx, projectID, room.ID, panels, plan); err != nil {
			return report, err
		}

		report.RoomReports = append(report.RoomReports, summary)
		totalPanels += summary.PanelCount
		totalRoomArea += summary.RoomArea
	}

	return finishReport(report, totalPanels, totalRoomArea, pooledStats(invByMaterial)), nil
}

// pooledStats sums the per-material inventories' counters into one
// aggregate for the project-wide report, matching what a single shared
// inventory would have reported when there is only one material group.
func pooledStats(invByMaterial map[string]*inventory.Inventory) model.InventoryStats {
	var out model.InventoryStats
	for _, inv := range invByMaterial {
		s := inv.Stats()
		out.Created += s.Created
		out.Reused += s.Reused
		out.FullPanelsSaved += s.FullPanelsSaved
		out.TotalLeftoverArea += s.TotalLeftoverArea
	}
	return out
}

// roomOrientation picks the orientation a single room is tiled under.
// Override precedence: an explicit
// per-room override always wins; otherwise the resolved strategy's
// orientation applies, except room_optimal (empty chosenOrientation),
// which trials both directions for this room. Under room_optimal it
// returns false if the room cannot be decomposed under either
// orientation; otherwise it always returns true.
func roomOrientation(room model.Room, params model.GenerationParams, chosenStrategy model.StrategyName, chosenOrientation model.Orientation, spec model.PanelSpec) (model.Orientation, bool) {
	if params.RoomSpecificOverrides != nil {
		if o, ok := params.RoomSpecificOverrides[room.ID]; ok {
			return o, true
		}
	}
	if chosenStrategy == model.StrategyRoomOptimal {
		return strategy.DecideRoomOrientation(room, spec)
	}
	return chosenOrientation, true
}

// commitMerged runs the ProjectMerged strategy's committed pass: one
// shared bbox region is tiled as a single zone, and the resulting panels
// are attributed back to their enclosing room (by point-in-polygon) for
// reporting and per-room persistence, while the authoritative Plan is
// keyed by the Zone.
func (p *Planner) commitMerged(ctx context.Context, projectID string, kind model.PlanKind, params model.GenerationParams, spec model.PanelSpec, rooms []model.Room, report model.GenerationReport) (model.GenerationReport, error) {
	analysis := grouper.Analyze(rooms)
	if len(analysis.Groups) != 1 || !analysis.Groups[0].MergeAdmissible || len(analysis.Groups[0].RoomIDs) != len(rooms) {
		return report, model.NewPlanError(model.KindInvalidParams, "",
			fmt.Errorf("project_merged strategy is not admissible for this project"))
	}
	group := analysis.Groups[0]

	if err := ctx.Err(); err != nil {
		return report, err
	}

	zone := model.Zone{ID: "zone:" + projectID, RoomIDs: group.RoomIDs, Height: group.Height}

	inv := inventory.New("ACTUAL", nil)
	counter := model.NewPanelIDCounter(kind)
	panels := tiler.Tile(group.BoundingBox, model.Vertical, spec, inv, counter)

	byRoom := assignPanelsToRooms(panels, rooms)

	var totalRoomArea float64
	var totalPanels int
	for _, room := range rooms {
		area, err := geometry.PolygonArea(room.Polygon)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("room %s: %v", room.ID, err))
			continue
		}
		roomPanels := byRoom[room.ID]
		summary := panelgen.Summarize(room.ID, area, 0, roomPanels, model.Vertical)
		if err := p.store.ReplacePanels(ctx, projectID, room.ID, roomPanels); err != nil {
			return report, model.NewPlanError(model.KindStorageFailure, room.ID, fmt.Errorf("replacing panels: %w", err))
		}
		report.RoomReports = append(report.RoomReports, summary)
		totalRoomArea += area
		totalPanels += len(roomPanels)
	}

	plan := model.Plan{
		ID:                  "plan:" + zone.ID,
		Kind:                kind,
		ZoneID:              zone.ID,
		Thickness:           planThickness(kind, params, nil),
		OrientationStrategy: model.StrategyProjectMergedIn,
		PanelWidth:          spec.MaxWidth,
		PanelLength:         spec.LengthMode,
		CustomPanelLength:   spec.CustomLength,
		Panels:              panels,
	}
	if err := p.store.UpsertPlan(ctx, projectID, plan); err != nil {
		return report, model.NewPlanError(model.KindStorageFailure, "", fmt.Errorf("upserting zone plan: %w", err))
	}

	return finishReport(report, totalPanels, totalRoomArea, inv.Stats()), nil
}

// assignPanelsToRooms buckets merged-zone panels by the room whose
// polygon contains the panel's rect center, for per-room reporting and
// persistence; a panel whose center falls in no room's polygon (any part
// of the merged bbox that no room covers) is left out of every room's
// bucket but remains part of the zone Plan.
func assignPanelsToRooms(panels []model.Panel, rooms []model.Room) map[string][]model.Panel {
	out := make(map[string][]model.Panel, len(rooms))
	for _, panel := range panels {
		center := panel.Rect.Center()
		for _, room := range rooms {
			if geometry.PointInPolygon(center, room.Polygon) {
				assigned := panel
				assigned.RoomID = room.ID
				assigned.ZoneID = ""
				out[room.ID] = append(out[room.ID], assigned)
				break
			}
		}
	}
	return out
}

func buildPlan(kind model.PlanKind, room model.Room, params model.GenerationParams, spec model.PanelSpec, orientation model.Orientation, panels []model.Panel, summary model.RoomSummary) model.Plan {
	return model.Plan{
		ID:                  "plan:" + room.ID,
		Kind:                kind,
		RoomID:              room.ID,
		Thickness:           planThickness(kind, params, &room),
		OrientationStrategy: effectiveStrategyLabel(params, orientation),
		PanelWidth:          spec.MaxWidth,
		PanelLength:         spec.LengthMode,
		CustomPanelLength:   spec.CustomLength,
		Panels:              panels,
		Stats:               summary,
	}
}

// planThickness resolves the plan-level thickness metadata
// (ceiling_thickness or floor_thickness), honoring a room's own override
// before the global default.
func planThickness(kind model.PlanKind, params model.GenerationParams, room *model.Room) float64 {
	if params.ThicknessOverride != nil {
		return *params.ThicknessOverride
	}
	if room != nil {
		if kind == model.PlanKindFloor && room.FloorThickness != nil {
			return *room.FloorThickness
		}
		if kind == model.PlanKindCeiling && room.CeilingThickness != nil {
			return *room.CeilingThickness
		}
	}
	if kind == model.PlanKindFloor {
		return model.DefaultFloorPanelThickness
	}
	return model.DefaultCeilingThickness
}

// effectiveStrategyLabel records, for regeneration reproducibility, what
// the caller actually asked for (Auto is preserved as Auto rather than
// being rewritten to the resolved strategy, so a future regeneration with
// the same params reproduces the same resolution process).
func effectiveStrategyLabel(params model.GenerationParams, _ model.Orientation) model.OrientationStrategy {
	if params.OrientationStrategy == "" {
		return model.StrategyAuto
	}
	return params.OrientationStrategy
}

func (p *Planner) persistRoom(ctx context.Context, projectID, roomID string, panels []model.Panel, plan model.Plan) error {
	if err := p.store.ReplacePanels(ctx, projectID, roomID, panels); err != nil {
		return model.NewPlanError(model.KindStorageFailure, roomID, fmt.Errorf("replacing panels: %w", err))
	}
	if err := p.store.UpsertPlan(ctx, projectID, plan); err != nil {
		return model.NewPlanError(model.KindStorageFailure, roomID, fmt.Errorf("upserting plan: %w", err))
	}
	return nil
}

func finishReport(report model.GenerationReport, totalPanels int, totalRoomArea float64, stats model.InventoryStats) model.GenerationReport {
	report.TotalPanels = totalPanels
	report.LeftoversCreated = stats.Created
	report.LeftoversReused = stats.Reused
	report.FullPanelsSaved = stats.FullPanelsSaved
	if totalRoomArea > 0 {
		report.ProjectWastePercentage = stats.TotalLeftoverArea / totalRoomArea * 100
	}
	return report
}

func eligibleSorted(rooms []model.Room, kind model.PlanKind) []model.Room {
	var out []model.Room
	for _, r := range rooms {
		if kind == model.PlanKindFloor {
			if r.EligibleForFloor() {
				out = append(out, r)
			}
			continue
		}
		if r.Eligible() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
