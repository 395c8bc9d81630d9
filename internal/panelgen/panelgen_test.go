package panelgen

import (
	"testing"

	"github.com/piwi3910/panelplan/internal/inventory"
	"github.com/piwi3910/panelplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoom_RectangularVertical(t *testing.T) {
	room := model.Room{
		ID:      "room-1",
		Polygon: model.Outline{{X: 0, Y: 0}, {X: 5000, Y: 0}, {X: 5000, Y: 3000}, {X: 0, Y: 3000}},
	}
	inv := inventory.New("ACTUAL", nil)
	counter := model.NewPanelIDCounter(model.PlanKindCeiling)
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)

	panels, summary, err := GenerateRoom(room, model.Vertical, spec, inv, counter)
	require.NoError(t, err)

	require.Len(t, panels, 5)
	assert.Equal(t, "room-1", panels[0].RoomID)
	assert.Equal(t, 5, summary.PanelCount)
	assert.Equal(t, 1, summary.CutPanelCount)
	assert.Equal(t, 4, summary.FullPanelCount)
	assert.InDelta(t, 15.0, summary.WastePercentage, 1e-9)
	assert.InDelta(t, 15_000_000.0, summary.RoomArea, 1e-6)
}

func TestGenerateRoom_LShape_MultipleCells(t *testing.T) {
	room := model.Room{
		ID: "room-l",
		Polygon: model.Outline{
			{X: 0, Y: 0}, {X: 2000, Y: 0}, {X: 2000, Y: 1000},
			{X: 1000, Y: 1000}, {X: 1000, Y: 2000}, {X: 0, Y: 2000},
		},
	}
	inv := inventory.New("ACTUAL", nil)
	counter := model.NewPanelIDCounter(model.PlanKindCeiling)
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)

	panels, summary, err := GenerateRoom(room, model.Horizontal, spec, inv, counter)
	require.NoError(t, err)
	require.NotEmpty(t, panels)
	assert.Equal(t, len(panels), summary.PanelCount)
	assert.InDelta(t, 3_000_000.0, summary.RoomArea, 1e-6)

	for _, p := range panels {
		assert.Equal(t, "room-l", p.RoomID)
	}
}

func TestGenerateRoom_DegeneratePolygon_ReturnsError(t *testing.T) {
	room := model.Room{ID: "room-bad", Polygon: model.Outline{{X: 0, Y: 0}, {X: 0, Y: 0}}}
	inv := inventory.New("ACTUAL", nil)
	counter := model.NewPanelIDCounter(model.PlanKindCeiling)
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)

	_, _, err := GenerateRoom(room, model.Horizontal, spec, inv, counter)
	require.Error(t, err)
}

func TestGenerateRoom_IDsAreMonotonicAcrossRooms(t *testing.T) {
	roomA := model.Room{ID: "a", Polygon: model.Outline{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}}}
	roomB := model.Room{ID: "b", Polygon: model.Outline{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}}}

	inv := inventory.New("ACTUAL", nil)
	counter := model.NewPanelIDCounter(model.PlanKindCeiling)
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)

	panelsA, _, err := GenerateRoom(roomA, model.Horizontal, spec, inv, counter)
	require.NoError(t, err)
	panelsB, _, err := GenerateRoom(roomB, model.Horizontal, spec, inv, counter)
	require.NoError(t, err)

	assert.Equal(t, "CP_001", panelsA[0].PanelID)
	assert.Equal(t, "CP_002", panelsB[0].PanelID)
}
