// Package decompose splits a (possibly non-convex) room polygon into a
// set of axis-aligned rectangular cells whose union covers the polygon
// interior, using a universal grid over the vertex coordinates.
package decompose

import (
	"fmt"
	"sort"

	"github.com/piwi3910/panelplan/internal/geometry"
	"github.com/piwi3910/panelplan/internal/model"
)

// Decompose splits poly into axis-aligned cells and returns diverged=false
// when the grid was used. A degenerate polygon returns a
// KindDegeneratePolygon error and no cells. When the grid yields no usable
// cell it returns the single bbox cell with diverged=true and no error; on
// a coverage-invariant violation it returns the bbox cell with
// diverged=true and a KindDecompositionDiverged error.
func Decompose(poly model.Outline) (cells []model.Rect, diverged bool, err error) {
	polyArea, err := geometry.PolygonArea(poly)
	if err != nil {
		return nil, false, err
	}

	bbox := geometry.BBox(poly)
	xs := filteredCoords(uniqueSorted(xsOf(poly)), bbox.MinX, bbox.MaxX)
	ys := filteredCoords(uniqueSorted(ysOf(poly)), bbox.MinY, bbox.MaxY)

	if len(xs) < 2 || len(ys) < 2 {
		return []model.Rect{bbox}, true, nil
	}

	// Row-major order: walk y bands outer, x columns inner.
	var kept []model.Rect
	for j := 0; j < len(ys)-1; j++ {
		for i := 0; i < len(xs)-1; i++ {
			cell := model.Rect{MinX: xs[i], MinY: ys[j], MaxX: xs[i+1], MaxY: ys[j+1]}
			if !cell.Valid() {
				continue
			}
			if cellKept(cell, poly) {
				kept = append(kept, cell)
			}
		}
	}

	if len(kept) == 0 {
		return []model.Rect{bbox}, true, nil
	}

	var coveredArea float64
	for _, c := range kept {
		coveredArea += c.Area()
	}

	if polyArea > 0 {
		ratio := abs(coveredArea-polyArea) / polyArea
		if ratio > model.DefaultCoverageTolerance {
			return []model.Rect{bbox}, true, model.NewPlanError(model.KindDecompositionDiverged, "",
				fmt.Errorf("coverage ratio %.4f exceeds tolerance %.4f", ratio, model.DefaultCoverageTolerance))
		}
	}

	return kept, false, nil
}

// cellKept implements the two-test keep rule: center inside, OR at least
// 3 of 4 corners inside. Corners are probed nudged a hair toward the
// cell's own center rather than at their exact coordinates: an exact
// corner can sit precisely on a reflex vertex of the polygon (where
// PointInPolygon's on-edge rule reports it as inside) while the cell
// itself is mostly exterior there, which would otherwise over-admit cells
// that merely touch a concave notch at a single point.
func cellKept(cell model.Rect, poly model.Outline) bool {
	center := cell.Center()
	if geometry.PointInPolygon(center, poly) {
		return true
	}
	const nudge = 1e-3 // mm, toward center, well under DefaultOverlapTolerance
	corners := cell.Corners()
	insideCount := 0
	for _, c := range corners {
		probe := nudgeToward(c, center, nudge)
		if geometry.PointInPolygon(probe, poly) {
			insideCount++
		}
	}
	return insideCount >= 3
}

func nudgeToward(p, target model.Point2D, amount float64) model.Point2D {
	dx, dy := target.X-p.X, target.Y-p.Y
	out := p
	if dx > 0 {
		out.X += amount
	} else if dx < 0 {
		out.X -= amount
	}
	if dy > 0 {
		out.Y += amount
	} else if dy < 0 {
		out.Y -= amount
	}
	return out
}

func xsOf(poly model.Outline) []float64 {
	out := make([]float64, len(poly))
	for i, p := range poly {
		out[i] = p.X
	}
	return out
}

func ysOf(poly model.Outline) []float64 {
	out := make([]float64, len(poly))
	for i, p := range poly {
		out[i] = p.Y
	}
	return out
}

func uniqueSorted(vals []float64) []float64 {
	sort.Float64s(vals)
	out := vals[:0:0]
	for i, v := range vals {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// filteredCoords drops any coordinate within 1% of the bbox extent from
// its predecessor, preventing micro-cells from floating-point jitter,
// while always keeping the first and last coordinate.
func filteredCoords(sorted []float64, min, max float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}
	extent := max - min
	if extent <= 0 {
		return sorted
	}
	threshold := extent * model.DefaultJitterFilterFraction

	out := []float64{sorted[0]}
	for i := 1; i < len(sorted)-1; i++ {
		if sorted[i]-out[len(out)-1] >= threshold {
			out = append(out, sorted[i])
		}
	}
	if len(sorted) > 1 {
		last := sorted[len(sorted)-1]
		if last-out[len(out)-1] >= threshold || len(out) == 1 {
			out = append(out, last)
		} else {
			out[len(out)-1] = last
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
