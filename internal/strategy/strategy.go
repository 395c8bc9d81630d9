// Package strategy evaluates the candidate orientation strategies for a
// project's rooms and ranks them by waste percentage.
package strategy

import (
	"context"
	"fmt"
	"sort"

	"github.com/piwi3910/panelplan/internal/geometry"
	"github.com/piwi3910/panelplan/internal/grouper"
	"github.com/piwi3910/panelplan/internal/inventory"
	"github.com/piwi3910/panelplan/internal/model"
	"github.com/piwi3910/panelplan/internal/panelgen"
	"github.com/piwi3910/panelplan/internal/tiler"
)

// Store is the read-only room source consulted by AnalyzeOrientations.
type Store interface {
	ListRooms(ctx context.Context, projectID string) ([]model.Room, error)
}

// strategyOrder fixes the last-resort tie-break order between strategies.
var strategyOrder = []model.StrategyName{
	model.StrategyAllHorizontal,
	model.StrategyAllVertical,
	model.StrategyRoomOptimal,
	model.StrategyProjectMerged,
}

// AnalyzeOrientations loads a project's eligible rooms and evaluates every
// applicable candidate strategy, returning results ordered by rank
// (lowest waste percentage first).
func AnalyzeOrientations(ctx context.Context, store Store, projectID string, kind model.PlanKind, spec model.PanelSpec) ([]model.StrategyResult, error) {
	rooms, err := store.ListRooms(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return Evaluate(ctx, rooms, kind, spec)
}

// Evaluate is the pure, store-independent core of AnalyzeOrientations.
func Evaluate(ctx context.Context, rooms []model.Room, kind model.PlanKind, spec model.PanelSpec) ([]model.StrategyResult, error) {
	eligible := eligibleRooms(rooms, kind)
	if len(eligible) == 0 {
		return nil, model.NewPlanError(model.KindNoEligibleRooms, "", fmt.Errorf("no eligible rooms for %s", kind))
	}

	var results []model.StrategyResult

	h, err := runUniform(ctx, eligible, model.Horizontal, kind, spec, "ANALYSIS-H", model.StrategyAllHorizontal)
	if err != nil {
		return nil, err
	}
	results = append(results, h)

	v, err := runUniform(ctx, eligible, model.Vertical, kind, spec, "ANALYSIS-V", model.StrategyAllVertical)
	if err != nil {
		return nil, err
	}
	results = append(results, v)

	if kind == model.PlanKindCeiling {
		ind, err := runRoomOptimal(ctx, eligible, spec)
		if err != nil {
			return nil, err
		}
		results = append(results, ind)

		if merged, ok, err := runProjectMerged(ctx, eligible, spec); err != nil {
			return nil, err
		} else if ok {
			results = append(results, merged)
		}
	}

	rank(results)
	return results, nil
}

func eligibleRooms(rooms []model.Room, kind model.PlanKind) []model.Room {
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

// runUniform tiles every room with the same orientation against one
// shared, freshly tagged analysis inventory.
func runUniform(ctx context.Context, rooms []model.Room, o model.Orientation, kind model.PlanKind, spec model.PanelSpec, tag string, name model.StrategyName) (model.StrategyResult, error) {
	inv := inventory.New(tag, nil)
	counter := model.NewPanelIDCounter(kind)

	var panels []model.Panel
	var roomResults []model.RoomSummary
	var totalRoomArea, totalPanelArea float64

	for _, room := range rooms {
		if err := ctx.Err(); err != nil {
			return model.StrategyResult{}, err
		}
		roomPanels, summary, err := panelgen.GenerateRoom(room, o, spec, inv, counter)
		if err != nil {
			continue // degenerate room: skipped, other rooms proceed
		}
		panels = append(panels, roomPanels...)
		roomResults = append(roomResults, summary)
		totalRoomArea += summary.RoomArea
		totalPanelArea += summary.TotalPanelArea
	}

	return buildResult(name, o, panels, roomResults, inv, totalRoomArea, totalPanelArea), nil
}

// DecideRoomOrientation trials both orientations for room against scratch,
// throwaway inventories so neither candidate's leftover creation
// contaminates the other's waste figure, and returns the winner. It
// reports false if the room fails decomposition under both orientations
// (a degenerate polygon), letting the caller skip the room. Shared by
// runRoomOptimal and the planner's room_optimal commit pass so both
// compute the same per-room decision the same way.
func DecideRoomOrientation(room model.Room, spec model.PanelSpec) (model.Orientation, bool) {
	trialH := inventory.New("ANALYSIS-IND-trial", nil)
	_, sumH, errH := panelgen.GenerateRoom(room, model.Horizontal, spec, trialH, model.NewPanelIDCounter(model.PlanKindCeiling))

	trialV := inventory.New("ANALYSIS-IND-trial", nil)
	_, sumV, errV := panelgen.GenerateRoom(room, model.Vertical, spec, trialV, model.NewPanelIDCounter(model.PlanKindCeiling))

	if errH != nil && errV != nil {
		return "", false
	}
	if errH != nil {
		return model.Vertical, true
	}
	if errV != nil {
		return model.Horizontal, true
	}
	if sumV.WastePercentage < sumH.WastePercentage {
		return model.Vertical, true
	}
	return model.Horizontal, true
}

// runRoomOptimal lets each room independently pick whichever of H/V wastes
// less, trialing both against scratch inventories before committing the
// winner's panels to the shared ANALYSIS-IND inventory.
func runRoomOptimal(ctx context.Context, rooms []model.Room, spec model.PanelSpec) (model.StrategyResult, error) {
	inv := inventory.New("ANALYSIS-IND", nil)
	counter := model.NewPanelIDCounter(model.PlanKindCeiling)

	var panels []model.Panel
	var roomResults []model.RoomSummary
	var totalRoomArea, totalPanelArea float64

	for _, room := range rooms {
		if err := ctx.Err(); err != nil {
			return model.StrategyResult{}, err
		}

		best, ok := DecideRoomOrientation(room, spec)
		if !ok {
			continue
		}

		roomPanels, summary, err := panelgen.GenerateRoom(room, best, spec, inv, counter)
		if err != nil {
			continue
		}
		panels = append(panels, roomPanels...)
		roomResults = append(roomResults, summary)
		totalRoomArea += summary.RoomArea
		totalPanelArea += summary.TotalPanelArea
	}

	return buildResult(model.StrategyRoomOptimal, "", panels, roomResults, inv, totalRoomArea, totalPanelArea), nil
}

// runProjectMerged is admissible only when the height grouper reports every eligible room
// in a single, merge-admissible height group; it then tiles the merged
// bbox directly (decomposing a bbox yields itself, so the grid step is a
// no-op here).
func runProjectMerged(ctx context.Context, rooms []model.Room, spec model.PanelSpec) (model.StrategyResult, bool, error) {
	analysis := grouper.Analyze(rooms)
	if len(analysis.Groups) != 1 {
		return model.StrategyResult{}, false, nil
	}
	group := analysis.Groups[0]
	if !group.MergeAdmissible || len(group.RoomIDs) != len(rooms) {
		return model.StrategyResult{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return model.StrategyResult{}, false, err
	}

	inv := inventory.New("ANALYSIS-M", nil)
	counter := model.NewPanelIDCounter(model.PlanKindCeiling)

	cellPanels := tiler.Tile(group.BoundingBox, model.Vertical, spec, inv, counter)

	var totalRoomArea float64
	for _, room := range rooms {
		area, err := geometry.PolygonArea(room.Polygon)
		if err == nil {
			totalRoomArea += area
		}
	}

	var totalPanelArea float64
	for _, p := range cellPanels {
		totalPanelArea += p.Area()
	}

	summary := model.RoomSummary{
		RoomID:      "", // attached to a zone, not a single room
		Orientation: model.Vertical,
		RoomArea:    totalRoomArea,
	}
	for _, p := range cellPanels {
		summary.PanelCount++
		summary.TotalPanelArea += p.Area()
		if p.IsCut {
			summary.CutPanelCount++
		} else {
			summary.FullPanelCount++
		}
		if p.FromLeftover {
			summary.FromLeftoverCount++
		}
	}
	if totalRoomArea > 0 {
		summary.WastePercentage = inv.Stats().TotalLeftoverArea / totalRoomArea * 100
	}

	result := buildResult(model.StrategyProjectMerged, model.Vertical, cellPanels, []model.RoomSummary{summary}, inv, totalRoomArea, totalPanelArea)
	return result, true, nil
}

func buildResult(name model.StrategyName, o model.Orientation, panels []model.Panel, roomResults []model.RoomSummary, inv *inventory.Inventory, totalRoomArea, totalPanelArea float64) model.StrategyResult {
	result := model.StrategyResult{
		StrategyName:   name,
		Orientation:    o,
		Panels:         panels,
		RoomResults:    roomResults,
		LeftoverStats:  inv.Stats(),
		TotalRoomArea:  totalRoomArea,
		TotalPanelArea: totalPanelArea,
	}
	if totalRoomArea > 0 {
		result.WastePercentage = inv.Stats().TotalLeftoverArea / totalRoomArea * 100
	}
	return result
}

// rank sorts results by the ranking key: lowest waste_percentage,
// then fewest total panels, then strategyOrder.
func rank(results []model.StrategyResult) {
	orderIndex := func(name model.StrategyName) int {
		for i, n := range strategyOrder {
			if n == name {
				return i
			}
		}
		return len(strategyOrder)
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.WastePercentage != b.WastePercentage {
			return a.WastePercentage < b.WastePercentage
		}
		if len(a.Panels) != len(b.Panels) {
			return len(a.Panels) < len(b.Panels)
		}
		return orderIndex(a.StrategyName) < orderIndex(b.StrategyName)
	})
}
