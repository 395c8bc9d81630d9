// Package tiler stripe-tiles a single rectangular region into stock-width
// panels, consulting the leftover inventory for every cut panel.
package tiler

import (
	"fmt"

	"github.com/piwi3910/panelplan/internal/inventory"
	"github.com/piwi3910/panelplan/internal/model"
)

// Tile fills rect with panels under orientation o and spec, consulting inv
// for every cut panel and creating new leftovers when no match is found.
// idCounter assigns the caller's monotonic "CP_<nnn>"/"FP_<nnn>" IDs.
func Tile(rect model.Rect, o model.Orientation, spec model.PanelSpec, inv *inventory.Inventory, idCounter *model.PanelIDCounter) []model.Panel {
	stripeLen := stripeExtent(rect, o)
	if spec.LengthMode == model.LengthCustom && spec.CustomLength > 0 && spec.CustomLength < stripeLen {
		stripeLen = spec.CustomLength
	}
	stripeWidth := spec.MaxWidth
	if stripeWidth <= 0 {
		stripeWidth = model.MaxStockWidth
	}

	var panels []model.Panel

	crossTotal := crossExtent(rect, o)
	alongTotal := stripeExtent(rect, o)

	for crossPos := 0.0; crossPos < crossTotal; crossPos += stripeWidth {
		thisStripeWidth := stripeWidth
		clippedCross := false
		if crossPos+thisStripeWidth > crossTotal {
			thisStripeWidth = crossTotal - crossPos
			clippedCross = true
		}
		if thisStripeWidth <= 0 {
			break
		}

		for alongPos := 0.0; alongPos < alongTotal; alongPos += stripeLen {
			thisLength := stripeLen
			clippedAlong := false
			if alongPos+thisLength > alongTotal {
				thisLength = alongTotal - alongPos
				clippedAlong = true
			}
			if thisLength <= 0 {
				break
			}

			panelRect := buildRect(rect, o, crossPos, alongPos, thisStripeWidth, thisLength)

			isCut := thisStripeWidth < model.MaxStockWidth || clippedCross || clippedAlong

			panel := model.Panel{
				PanelID: idCounter.Next(),
				Rect:    panelRect,
				Width:   thisStripeWidth,
				Length:  thisLength,
				IsCut:   isCut,
			}

			if isCut {
				applyLeftoverPolicy(&panel, inv, thisStripeWidth, thisLength, spec.Thickness)
			}

			panels = append(panels, panel)
		}
	}

	return panels
}

// applyLeftoverPolicy tries to satisfy the cut from a compatible leftover;
// if none is found, a full stock panel is cut conceptually and the
// residual width is recorded as a new leftover.
func applyLeftoverPolicy(panel *model.Panel, inv *inventory.Inventory, crossDim, length, thickness float64) {
	if idx, lo, ok := inv.FindCompatible(crossDim, length, thickness); ok {
		inv.Consume(idx, crossDim)
		panel.FromLeftover = true
		panel.CutNotes = fmt.Sprintf("From leftover %s", lo.ID)
		return
	}

	residual := model.MaxStockWidth - crossDim
	inv.Add(length, thickness, residual)
}

func stripeExtent(rect model.Rect, o model.Orientation) float64 {
	if o == model.Horizontal {
		return rect.Width()
	}
	return rect.Height()
}

func crossExtent(rect model.Rect, o model.Orientation) float64 {
	if o == model.Horizontal {
		return rect.Height()
	}
	return rect.Width()
}

// buildRect maps (crossPos, alongPos, crossDim, alongDim) back into
// sheet-absolute coordinates for the given orientation. Horizontal stripes
// run along +x (alongPos is x, crossPos is y); Vertical stripes run along
// +y (alongPos is y, crossPos is x).
func buildRect(rect model.Rect, o model.Orientation, crossPos, alongPos, crossDim, alongDim float64) model.Rect {
	if o == model.Horizontal {
		return model.Rect{
			MinX: rect.MinX + alongPos,
			MinY: rect.MinY + crossPos,
			MaxX: rect.MinX + alongPos + alongDim,
			MaxY: rect.MinY + crossPos + crossDim,
		}
	}
	return model.Rect{
		MinX: rect.MinX + crossPos,
		MinY: rect.MinY + alongPos,
		MaxX: rect.MinX + crossPos + crossDim,
		MaxY: rect.MinY + alongPos + alongDim,
	}
}
