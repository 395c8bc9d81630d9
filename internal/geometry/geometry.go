// Package geometry implements the panel-layout engine's primitive
// polygon and rectangle math: area, bounding box, perimeter, point
// containment, and the connectivity heuristic used by the height grouper.
package geometry

import (
	"fmt"
	"math"

	"github.com/piwi3910/panelplan/internal/model"
)

// PolygonArea computes the absolute shoelace area of poly. Returns an
// error wrapping model.KindDegeneratePolygon for fewer than 3 points.
func PolygonArea(poly model.Outline) (float64, error) {
	if len(poly) < 3 {
		return 0, model.NewPlanError(model.KindDegeneratePolygon, "", fmt.Errorf("polygon has %d points, need >= 3", len(poly)))
	}
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	area := math.Abs(sum) / 2
	if area == 0 {
		return 0, model.NewPlanError(model.KindDegeneratePolygon, "", fmt.Errorf("polygon has zero area"))
	}
	return area, nil
}

// BBox returns the axis-aligned bounding box of poly.
func BBox(poly model.Outline) model.Rect {
	if len(poly) == 0 {
		return model.Rect{}
	}
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := poly[0].X, poly[0].Y
	for _, p := range poly[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return model.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Perimeter sums the lengths of poly's implicitly-closed edges.
func Perimeter(poly model.Outline) float64 {
	if len(poly) < 2 {
		return 0
	}
	var total float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := poly[j].X - poly[i].X
		dy := poly[j].Y - poly[i].Y
		total += math.Hypot(dx, dy)
	}
	return total
}

const eqTolerance = model.DefaultCoordEqualTolerance

// PointInPolygon reports whether p lies inside poly using ray casting with
// a horizontal rightward ray. Points on an edge are treated as inside.
func PointInPolygon(p model.Point2D, poly model.Outline) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if pointOnSegment(p, poly[i], poly[j]) {
			return true
		}
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y

		intersects := (yi > p.Y) != (yj > p.Y)
		if intersects {
			xIntersect := xi + (p.Y-yi)/(yj-yi)*(xj-xi)
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnSegment(p, a, b model.Point2D) bool {
	// Cross product near zero => collinear; then check p is within the
	// segment's bounding box.
	cross := (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
	if math.Abs(cross) > eqTolerance*math.Max(1, math.Hypot(b.X-a.X, b.Y-a.Y)) {
		return false
	}
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return p.X >= minX-eqTolerance && p.X <= maxX+eqTolerance &&
		p.Y >= minY-eqTolerance && p.Y <= maxY+eqTolerance
}

// PolygonsClose reports whether any vertex of poly1 is within tol of any
// vertex of poly2, the adjacency heuristic used by the height grouper.
func PolygonsClose(poly1, poly2 model.Outline, tol float64) bool {
	for _, a := range poly1 {
		for _, b := range poly2 {
			if math.Hypot(a.X-b.X, a.Y-b.Y) <= tol {
				return true
			}
		}
	}
	return false
}

// CentersWithin reports whether the bbox centers of poly1 and poly2 are
// within tol of each other, the secondary adjacency test.
func CentersWithin(poly1, poly2 model.Outline, tol float64) bool {
	c1 := BBox(poly1).Center()
	c2 := BBox(poly2).Center()
	return math.Hypot(c1.X-c2.X, c1.Y-c2.Y) <= tol
}

// RectsOverlap reports whether a and b overlap by more than tol in both
// axes (a helper for checking the panel non-overlap invariant).
func RectsOverlap(a, b model.Rect, tol float64) bool {
	return a.MinX < b.MaxX-tol && a.MaxX > b.MinX+tol &&
		a.MinY < b.MaxY-tol && a.MaxY > b.MinY+tol
}
