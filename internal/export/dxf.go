package export

import (
	"fmt"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

const (
	dxfLayerPanels = "PANELS"
	dxfLayerCut    = "CUT"
)

// ExportLayoutDXF writes a room's (or zone's) panel rectangles as line
// entities on two layers, full panels on PANELS and cut panels on CUT,
// so the layout round-trips into any CAD viewer.
func ExportLayoutDXF(path string, panels []model.Panel) error {
	if len(panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0
	d.AddLayer(dxfLayerPanels, dxf.DefaultColor, dxf.DefaultLineType, true)
	d.AddLayer(dxfLayerCut, dxf.DefaultColor, dxf.DefaultLineType, true)

	for _, p := range panels {
		layer := dxfLayerPanels
		if p.IsCut {
			layer = dxfLayerCut
		}
		d.ChangeLayer(layer)
		drawPanelOutline(d, p.Rect)
	}

	return d.SaveAs(path)
}

// drawPanelOutline draws a rectangle's four edges as LINE entities on the
// drawing's current layer.
func drawPanelOutline(d *drawing.Drawing, r model.Rect) {
	d.Line(r.MinX, r.MinY, 0, r.MaxX, r.MinY, 0)
	d.Line(r.MaxX, r.MinY, 0, r.MaxX, r.MaxY, 0)
	d.Line(r.MaxX, r.MaxY, 0, r.MinX, r.MaxY, 0)
	d.Line(r.MinX, r.MaxY, 0, r.MinX, r.MinY, 0)
}
