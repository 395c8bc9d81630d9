package grouper

import (
	"testing"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectRoom(id string, height float64, minX, minY, maxX, maxY float64) model.Room {
	h := height
	return model.Room{
		ID:     id,
		Height: &h,
		Polygon: model.Outline{
			{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY},
		},
	}
}

func TestAnalyze_GroupsByRoundedHeight(t *testing.T) {
	rooms := []model.Room{
		rectRoom("a", 2400.0001, 0, 0, 1000, 1000),
		rectRoom("b", 2399.9999, 1000, 0, 2000, 1000),
		rectRoom("c", 3000, 0, 2000, 1000, 3000),
	}

	analysis := Analyze(rooms)
	require.Len(t, analysis.Groups, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, analysis.Groups[0].RoomIDs)
	assert.ElementsMatch(t, []string{"c"}, analysis.Groups[1].RoomIDs)
}

func TestAnalyze_AdjacentSameSizeRoomsAreAdmissible(t *testing.T) {
	rooms := []model.Room{
		rectRoom("a", 2400, 0, 0, 1000, 1000),
		rectRoom("b", 2400, 1000, 0, 2000, 1000), // shares the x=1000 edge
	}

	analysis := Analyze(rooms)
	require.Len(t, analysis.Groups, 1)
	g := analysis.Groups[0]
	assert.InDelta(t, 1.0, g.AreaEfficiency, 1e-9) // two 1000x1000 squares tile a 2000x1000 bbox exactly
	assert.True(t, g.MergeAdmissible)
}

func TestAnalyze_DistantPairLowEfficiencyNotAdmissible(t *testing.T) {
	rooms := []model.Room{
		rectRoom("a", 2400, 0, 0, 1000, 1000),
		rectRoom("b", 2400, 3000, 3000, 3500, 3500), // far away, small, low combined efficiency
	}

	analysis := Analyze(rooms)
	require.Len(t, analysis.Groups, 1)
	assert.False(t, analysis.Groups[0].MergeAdmissible)
}

func TestAnalyze_SingleRoomGroupNeverAdmissible(t *testing.T) {
	rooms := []model.Room{rectRoom("solo", 2400, 0, 0, 1000, 1000)}

	analysis := Analyze(rooms)
	require.Len(t, analysis.Groups, 1)
	assert.False(t, analysis.Groups[0].MergeAdmissible)
}

func TestAnalyze_SkipsRoomsWithoutHeight(t *testing.T) {
	rooms := []model.Room{
		rectRoom("a", 2400, 0, 0, 1000, 1000),
		{ID: "no-height", Polygon: model.Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}},
	}

	analysis := Analyze(rooms)
	require.Len(t, analysis.Groups, 1)
	assert.Equal(t, []string{"a"}, analysis.Groups[0].RoomIDs)
}
