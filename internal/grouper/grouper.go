// Package grouper partitions rooms by ceiling height and decides whether
// each height group is a candidate for a merged-zone plan.
package grouper

import (
	"context"
	"math"
	"sort"

	"github.com/piwi3910/panelplan/internal/geometry"
	"github.com/piwi3910/panelplan/internal/model"
	"github.com/samber/lo"
)

// Store is the read-only room source the grouper consults. Defined here
// (not imported from internal/store) to keep the package dependency-free
// of persistence concerns; internal/store.Store satisfies it structurally.
type Store interface {
	ListRooms(ctx context.Context, projectID string) ([]model.Room, error)
}

// AnalyzeHeights groups a project's rooms by rounded ceiling height and
// evaluates each group's merge admissibility.
func AnalyzeHeights(ctx context.Context, store Store, projectID string) (model.HeightAnalysis, error) {
	rooms, err := store.ListRooms(ctx, projectID)
	if err != nil {
		return model.HeightAnalysis{}, err
	}
	return Analyze(rooms), nil
}

// Analyze is the pure, store-independent core of AnalyzeHeights, exposed
// separately so callers with an in-memory room set (the strategy
// evaluator, tests) can reuse it without a Store.
func Analyze(rooms []model.Room) model.HeightAnalysis {
	eligible := lo.Filter(rooms, func(r model.Room, _ int) bool {
		return r.Eligible() && r.Height != nil
	})

	byHeight := lo.GroupBy(eligible, func(r model.Room) float64 {
		return roundMM(*r.Height)
	})

	heights := lo.Keys(byHeight)
	sort.Float64s(heights)

	groups := make([]model.HeightGroup, 0, len(heights))
	for _, h := range heights {
		groups = append(groups, evaluateGroup(h, byHeight[h]))
	}

	return model.HeightAnalysis{Groups: groups}
}

func evaluateGroup(height float64, rooms []model.Room) model.HeightGroup {
	ids := lo.Map(rooms, func(r model.Room, _ int) string { return r.ID })
	sort.Strings(ids)

	bbox := combinedBBox(rooms)
	bboxArea := bbox.Area()

	var totalArea float64
	for _, r := range rooms {
		area, err := geometry.PolygonArea(r.Polygon)
		if err != nil {
			continue
		}
		totalArea += area
	}

	efficiency := 0.0
	if bboxArea > 0 {
		efficiency = totalArea / bboxArea
	}

	admissible := efficiency >= model.DefaultMergeAreaEfficiency && len(rooms) > 1 && anyPairAdjacent(rooms)

	return model.HeightGroup{
		Height:          height,
		RoomIDs:         ids,
		AreaEfficiency:  efficiency,
		MergeAdmissible: admissible,
		BoundingBox:     bbox,
	}
}

// anyPairAdjacent reports whether at least one pair of rooms in the group
// satisfies the connectivity heuristic: a shared near-vertex within
// 100mm, or bbox centers within 500mm.
func anyPairAdjacent(rooms []model.Room) bool {
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			if geometry.PolygonsClose(rooms[i].Polygon, rooms[j].Polygon, model.DefaultConnectivityTol) {
				return true
			}
			if geometry.CentersWithin(rooms[i].Polygon, rooms[j].Polygon, model.DefaultCenterDistanceTol) {
				return true
			}
		}
	}
	return false
}

func combinedBBox(rooms []model.Room) model.Rect {
	if len(rooms) == 0 {
		return model.Rect{}
	}
	bbox := geometry.BBox(rooms[0].Polygon)
	for _, r := range rooms[1:] {
		b := geometry.BBox(r.Polygon)
		bbox.MinX = math.Min(bbox.MinX, b.MinX)
		bbox.MinY = math.Min(bbox.MinY, b.MinY)
		bbox.MaxX = math.Max(bbox.MaxX, b.MaxX)
		bbox.MaxY = math.Max(bbox.MaxY, b.MaxY)
	}
	return bbox
}

// roundMM rounds a height to the nearest millimeter; heights compare
// exactly after rounding.
func roundMM(v float64) float64 {
	return math.Round(v)
}
