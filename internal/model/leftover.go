package model

// Leftover is a reusable offcut: the residual width of a stock panel after
// a cut. Invariant: WidthRemaining > 0 at rest; a Leftover whose remaining
// width drops to zero or below is removed by the inventory rather than
// kept at zero.
type Leftover struct {
	ID              string  `json:"id"`
	Length          float64 `json:"length"`
	Thickness       float64 `json:"thickness"`
	WidthRemaining  float64 `json:"width_remaining"`
	CreatedAt       int64   `json:"created_at"` // monotonic creation stamp from the inventory's own counter, for determinism
}

// Area returns the leftover's usable area.
func (l Leftover) Area() float64 {
	return l.Length * l.WidthRemaining
}

// InventoryStats are the aggregate counters tracked alongside the leftover
// list for one generation pass.
type InventoryStats struct {
	Created           int     `json:"created"`
	Reused            int     `json:"reused"`
	FullPanelsSaved   int     `json:"full_panels_saved"`
	TotalLeftoverArea float64 `json:"total_leftover_area"`
}
