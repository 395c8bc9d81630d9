// Package panelgen is the per-room panel generator: it glues decompose,
// tiler, and inventory into a single room's panel list and summary.
package panelgen

import (
	"fmt"

	"github.com/piwi3910/panelplan/internal/decompose"
	"github.com/piwi3910/panelplan/internal/geometry"
	"github.com/piwi3910/panelplan/internal/inventory"
	"github.com/piwi3910/panelplan/internal/model"
	"github.com/piwi3910/panelplan/internal/tiler"
)

// GenerateRoom decomposes room.Polygon into cells, tiles each cell under
// orientation o with spec, consulting inv for leftovers, and assigns
// RoomID plus monotonic panel IDs via idCounter. It returns the room's
// panels and summary, or an error if the polygon is degenerate.
func GenerateRoom(room model.Room, o model.Orientation, spec model.PanelSpec, inv *inventory.Inventory, idCounter *model.PanelIDCounter) ([]model.Panel, model.RoomSummary, error) {
	roomArea, err := geometry.PolygonArea(room.Polygon)
	if err != nil {
		return nil, model.RoomSummary{}, fmt.Errorf("generating room %s: %w", room.ID, err)
	}

	cells, _, err := decompose.Decompose(room.Polygon)
	if err != nil && len(cells) == 0 {
		// Only a fatal DegeneratePolygon comes back with no cells at all;
		// DecompositionDiverged still returns the bbox fallback cell and
		// is not a room-generation failure.
		return nil, model.RoomSummary{}, fmt.Errorf("generating room %s: %w", room.ID, err)
	}

	leftoverBefore := inv.Stats().TotalLeftoverArea

	var panels []model.Panel
	for _, cell := range cells {
		cellPanels := tiler.Tile(cell, o, spec, inv, idCounter)
		for i := range cellPanels {
			cellPanels[i].RoomID = room.ID
		}
		panels = append(panels, cellPanels...)
	}

	leftoverCreated := inv.Stats().TotalLeftoverArea - leftoverBefore
	summary := Summarize(room.ID, roomArea, leftoverCreated, panels, o)
	return panels, summary, nil
}

// Summarize computes the RoomSummary aggregate from a room's panel set.
// leftoverCreated is the leftover area newly added to the inventory while
// generating this room's panels; waste percentage is leftover area over
// room area, not a cut-count ratio.
func Summarize(roomID string, roomArea, leftoverCreated float64, panels []model.Panel, o model.Orientation) model.RoomSummary {
	summary := model.RoomSummary{RoomID: roomID, Orientation: o, RoomArea: roomArea}

	for _, p := range panels {
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

	if roomArea > 0 {
		summary.WastePercentage = leftoverCreated / roomArea * 100
	}

	return summary
}
