// Package inventory implements the leftover list and first-fit lookup
// used by the stripe tiler.
package inventory

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/piwi3910/panelplan/internal/model"
)

// Inventory is a mutable, pass-scoped collection of Leftovers plus
// aggregate counters. It is never shared across concurrent generation
// passes; a fresh Inventory is constructed per pass (or per strategy,
// during orientation analysis).
type Inventory struct {
	// Tag identifies this inventory's purpose for logging
	// ("ACTUAL", "ANALYSIS-H", ...).
	Tag string

	leftovers []model.Leftover
	stats     model.InventoryStats
	log       *slog.Logger
	clock     func() int64
}

// New creates an empty inventory tagged for logging/traceability.
// A nil logger defaults to slog.Default(); clock is a per-inventory
// monotonic counter so CreatedAt ordering is deterministic without
// wall-clock reads.
func New(tag string, logger *slog.Logger) *Inventory {
	if logger == nil {
		logger = slog.Default()
	}
	var counter int64
	return &Inventory{
		Tag: tag,
		log: logger,
		clock: func() int64 {
			counter++
			return counter
		},
	}
}

// Leftovers returns a read-only snapshot of the current leftover list,
// in first-fit scan order.
func (inv *Inventory) Leftovers() []model.Leftover {
	out := make([]model.Leftover, len(inv.leftovers))
	copy(out, inv.leftovers)
	return out
}

// Stats returns the aggregate counters.
func (inv *Inventory) Stats() model.InventoryStats {
	return inv.stats
}

// FindCompatible performs a first-fit linear scan for a leftover matching
// the fingerprint (length >= needed, thickness ==, width_remaining >=
// needed). Returns the index and a copy of the match, or -1 if none found.
// Thickness equality is an exact float comparison: panel thickness is a
// plan-level constant, never a computed value.
func (inv *Inventory) FindCompatible(neededWidth, neededLength, neededThickness float64) (int, model.Leftover, bool) {
	for i, lo := range inv.leftovers {
		if lo.Length >= neededLength && lo.Thickness == neededThickness && lo.WidthRemaining >= neededWidth {
			inv.log.Debug("compatible leftover found",
				"tag", inv.Tag, "leftover_id", lo.ID,
				"leftover_width", lo.WidthRemaining, "leftover_length", lo.Length,
				"needed_width", neededWidth, "needed_length", neededLength)
			return i, lo, true
		}
	}
	return -1, model.Leftover{}, false
}

// Consume uses widthUsed from the leftover at index idx, updating it in
// place when residual width remains, or removing it when fully consumed.
// No new leftover is ever created from consuming an existing one.
func (inv *Inventory) Consume(idx int, widthUsed float64) {
	lo := inv.leftovers[idx]
	remaining := lo.WidthRemaining - widthUsed

	if remaining > 0 {
		inv.leftovers[idx].WidthRemaining = remaining
		inv.log.Debug("leftover partially consumed", "tag", inv.Tag, "leftover_id", lo.ID, "remaining", remaining)
	} else {
		inv.leftovers = append(inv.leftovers[:idx], inv.leftovers[idx+1:]...)
		inv.log.Debug("leftover fully consumed", "tag", inv.Tag, "leftover_id", lo.ID)
	}

	inv.stats.Reused++
	inv.stats.FullPanelsSaved++
}

// Add appends a new leftover and updates the creation counters. A leftover
// with width_remaining <= 0 is never stored; it is dropped silently.
func (inv *Inventory) Add(length, thickness, widthRemaining float64) {
	if widthRemaining <= 0 {
		return
	}
	lo := model.Leftover{
		ID:             uuid.New().String(),
		Length:         length,
		Thickness:      thickness,
		WidthRemaining: widthRemaining,
		CreatedAt:      inv.clock(),
	}
	inv.leftovers = append(inv.leftovers, lo)
	inv.stats.Created++
	inv.stats.TotalLeftoverArea += lo.Area()

	inv.log.Debug("leftover created", "tag", inv.Tag, "leftover_id", lo.ID, "width", widthRemaining, "length", length)
}
