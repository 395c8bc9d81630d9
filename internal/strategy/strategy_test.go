package strategy

import (
	"context"
	"testing"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectRoom(id string, height float64, minX, minY, maxX, maxY float64) model.Room {
	h := height
	return model.Room{
		ID:        id,
		Height:    &h,
		FloorType: model.FloorTypePanel,
		Polygon: model.Outline{
			{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY},
		},
	}
}

func TestEvaluate_CeilingIncludesAllFourWhenMergeable(t *testing.T) {
	rooms := []model.Room{
		rectRoom("a", 2400, 0, 0, 5000, 3000),
		rectRoom("b", 2400, 5000, 0, 10000, 3000),
	}
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)

	results, err := Evaluate(context.Background(), rooms, model.PlanKindCeiling, spec)
	require.NoError(t, err)

	names := make(map[model.StrategyName]bool)
	for _, r := range results {
		names[r.StrategyName] = true
	}
	assert.True(t, names[model.StrategyAllHorizontal])
	assert.True(t, names[model.StrategyAllVertical])
	assert.True(t, names[model.StrategyRoomOptimal])
	assert.True(t, names[model.StrategyProjectMerged])
}

func TestEvaluate_FloorExcludesRoomOptimalAndMerged(t *testing.T) {
	rooms := []model.Room{rectRoom("a", 2400, 0, 0, 5000, 3000)}
	spec := model.DefaultPanelSpec(model.PlanKindFloor)

	results, err := Evaluate(context.Background(), rooms, model.PlanKindFloor, spec)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, model.StrategyRoomOptimal, r.StrategyName)
		assert.NotEqual(t, model.StrategyProjectMerged, r.StrategyName)
	}
}

func TestEvaluate_FloorSkipsNonPanelRooms(t *testing.T) {
	panelRoom := rectRoom("a", 2400, 0, 0, 5000, 3000)
	tileRoom := rectRoom("b", 2400, 5000, 0, 10000, 3000)
	tileRoom.FloorType = "Tile"

	spec := model.DefaultPanelSpec(model.PlanKindFloor)
	results, err := Evaluate(context.Background(), []model.Room{panelRoom, tileRoom}, model.PlanKindFloor, spec)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, rr := range results[0].RoomResults {
		assert.Equal(t, "a", rr.RoomID)
	}
}

func TestEvaluate_ResultsRankedByAscendingWaste(t *testing.T) {
	rooms := []model.Room{rectRoom("a", 2400, 0, 0, 5000, 3000)}
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)

	results, err := Evaluate(context.Background(), rooms, model.PlanKindCeiling, spec)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].WastePercentage, results[i].WastePercentage)
	}
}

func TestEvaluate_NoEligibleRoomsErrors(t *testing.T) {
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)
	_, err := Evaluate(context.Background(), nil, model.PlanKindCeiling, spec)
	require.Error(t, err)

	var pe *model.PlanError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, model.KindNoEligibleRooms, pe.Kind)
}

func TestEvaluate_NonMergeableGroupExcludesProjectMerged(t *testing.T) {
	rooms := []model.Room{
		rectRoom("a", 2400, 0, 0, 1000, 1000),
		rectRoom("b", 2400, 9000, 9000, 9500, 9500), // far apart, poor bbox efficiency
	}
	spec := model.DefaultPanelSpec(model.PlanKindCeiling)

	results, err := Evaluate(context.Background(), rooms, model.PlanKindCeiling, spec)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, model.StrategyProjectMerged, r.StrategyName)
	}
}
