package geometry

import (
	"testing"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonArea_Rectangle(t *testing.T) {
	poly := model.Outline{{X: 0, Y: 0}, {X: 5000, Y: 0}, {X: 5000, Y: 3000}, {X: 0, Y: 3000}}
	area, err := PolygonArea(poly)
	require.NoError(t, err)
	assert.Equal(t, 15_000_000.0, area)
}

func TestPolygonArea_LShape(t *testing.T) {
	poly := model.Outline{
		{X: 0, Y: 0}, {X: 2000, Y: 0}, {X: 2000, Y: 1000},
		{X: 1000, Y: 1000}, {X: 1000, Y: 2000}, {X: 0, Y: 2000},
	}
	area, err := PolygonArea(poly)
	require.NoError(t, err)
	assert.InDelta(t, 3_000_000.0, area, 1e-6)
}

func TestPolygonArea_Degenerate(t *testing.T) {
	_, err := PolygonArea(model.Outline{{X: 0, Y: 0}, {X: 1, Y: 1}})
	var pe *model.PlanError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, model.KindDegeneratePolygon, pe.Kind)
}

func TestBBox(t *testing.T) {
	poly := model.Outline{{X: 10, Y: -5}, {X: 100, Y: 50}, {X: -20, Y: 30}}
	r := BBox(poly)
	assert.Equal(t, model.Rect{MinX: -20, MinY: -5, MaxX: 100, MaxY: 50}, r)
}

func TestPerimeter_Rectangle(t *testing.T) {
	poly := model.Outline{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 50}}
	assert.Equal(t, 300.0, Perimeter(poly))
}

func TestPointInPolygon(t *testing.T) {
	poly := model.Outline{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}

	assert.True(t, PointInPolygon(model.Point2D{X: 50, Y: 50}, poly))
	assert.False(t, PointInPolygon(model.Point2D{X: 150, Y: 50}, poly))
	// on an edge => inside
	assert.True(t, PointInPolygon(model.Point2D{X: 50, Y: 0}, poly))
	assert.True(t, PointInPolygon(model.Point2D{X: 0, Y: 0}, poly))
}

func TestPointInPolygon_LShape(t *testing.T) {
	poly := model.Outline{
		{X: 0, Y: 0}, {X: 2000, Y: 0}, {X: 2000, Y: 1000},
		{X: 1000, Y: 1000}, {X: 1000, Y: 2000}, {X: 0, Y: 2000},
	}
	// inside the notch-excluded quadrant
	assert.False(t, PointInPolygon(model.Point2D{X: 1500, Y: 1500}, poly))
	// inside the left arm
	assert.True(t, PointInPolygon(model.Point2D{X: 500, Y: 1500}, poly))
}

func TestPolygonsClose(t *testing.T) {
	a := model.Outline{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	b := model.Outline{{X: 150, Y: 0}, {X: 250, Y: 0}, {X: 250, Y: 100}, {X: 150, Y: 100}}

	assert.False(t, PolygonsClose(a, b, 10))
	assert.True(t, PolygonsClose(a, b, 60))
}
