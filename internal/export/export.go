// Package export renders a GenerationReport (and the per-room Plans that
// produced it) to the interchange formats a real collaborator would want
// downstream of the core: a printable PDF layout + summary, an XLSX cut
// list, a DXF drawing of the panel rectangles, and QR-coded panel labels.
package export

import "github.com/piwi3910/panelplan/internal/model"

// panelColor is an RGB triple used to shade a panel rectangle by kind.
type panelColor struct {
	R, G, B int
}

var (
	colorFullPanel    = panelColor{R: 76, G: 175, B: 80}  // green
	colorCutPanel     = panelColor{R: 255, G: 152, B: 0}  // orange
	colorFromLeftover = panelColor{R: 33, G: 150, B: 243} // blue
)

// colorFor picks the fill color for a panel, keyed by panel kind so a
// reader can tell full/cut/reused panels apart at a glance.
func colorFor(p model.Panel) panelColor {
	switch {
	case p.FromLeftover:
		return colorFromLeftover
	case p.IsCut:
		return colorCutPanel
	default:
		return colorFullPanel
	}
}

// roomPanels groups a flat panel list by RoomID, preserving first-seen
// order, for export adapters that render one section per room.
func roomPanels(panels []model.Panel) (order []string, byRoom map[string][]model.Panel) {
	byRoom = make(map[string][]model.Panel)
	for _, p := range panels {
		key := p.RoomID
		if _, seen := byRoom[key]; !seen {
			order = append(order, key)
		}
		byRoom[key] = append(byRoom[key], p)
	}
	return order, byRoom
}
