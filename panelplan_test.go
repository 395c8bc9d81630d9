package panelplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectRoom(id string, w, h float64) Room {
	return Room{
		ID:        id,
		FloorType: "Panel",
		Polygon: Outline{
			{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h},
		},
	}
}

func TestEngine_GenerateCeilingEndToEnd(t *testing.T) {
	s := NewMemStore()
	s.SeedRooms("proj1", []Room{rectRoom("r1", 5000, 3000)})

	e := New(s)
	report, err := e.GenerateCeiling(context.Background(), "proj1", GenerationParams{
		PanelWidth:  1150,
		PanelLength: "Auto",
	})
	require.NoError(t, err)
	assert.Equal(t, "proj1", report.ProjectID)
	assert.Greater(t, report.TotalPanels, 0)
}

func TestEngine_AnalyzeOrientationsRanked(t *testing.T) {
	s := NewMemStore()
	s.SeedRooms("proj1", []Room{rectRoom("r1", 5000, 3000)})

	e := New(s)
	results, err := e.AnalyzeOrientations(context.Background(), "proj1", PlanKindCeiling, PanelSpec{MaxWidth: 1150})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].WastePercentage, results[i].WastePercentage)
	}
}

func TestEngine_AnalyzeHeightsGroupsRooms(t *testing.T) {
	s := NewMemStore()
	h := 2400.0
	room := rectRoom("r1", 5000, 3000)
	room.Height = &h
	s.SeedRooms("proj1", []Room{room})

	e := New(s)
	analysis, err := e.AnalyzeHeights(context.Background(), "proj1")
	require.NoError(t, err)
	require.Len(t, analysis.Groups, 1)
	assert.Equal(t, 2400.0, analysis.Groups[0].Height)
}
