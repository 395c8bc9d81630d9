// Package panelplan is the public facade over the panel-layout +
// leftover-reuse engine: height analysis, orientation analysis, and
// ceiling/floor generation, wired to a caller-supplied Store. It holds no
// state of its own beyond what internal/planner needs for its per-project
// concurrency guard.
package panelplan

import (
	"context"

	"github.com/piwi3910/panelplan/internal/grouper"
	"github.com/piwi3910/panelplan/internal/model"
	"github.com/piwi3910/panelplan/internal/planner"
	"github.com/piwi3910/panelplan/internal/store"
	"github.com/piwi3910/panelplan/internal/strategy"
)

// Re-exported so callers never need to import internal/model or
// internal/store directly for everyday use.
type (
	Room              = model.Room
	Outline           = model.Outline
	Point2D           = model.Point2D
	Panel             = model.Panel
	PanelSpec         = model.PanelSpec
	Plan              = model.Plan
	PlanKind          = model.PlanKind
	Orientation       = model.Orientation
	GenerationParams  = model.GenerationParams
	GenerationReport  = model.GenerationReport
	HeightAnalysis    = model.HeightAnalysis
	StrategyResult    = model.StrategyResult
	Store             = store.Store
)

const (
	PlanKindCeiling = model.PlanKindCeiling
	PlanKindFloor   = model.PlanKindFloor
)

// NewMemStore and NewJSONFileStore are convenience re-exports of
// internal/store's constructors, so a caller can stand up a Store without
// a second import.
func NewMemStore() *store.MemStore { return store.NewMemStore() }

func NewJSONFileStore(path string) (*store.JSONFileStore, error) {
	return store.OpenJSONFileStore(path)
}

// Engine is the stateful entry point: it owns the per-project generation
// locks across repeated calls. Construct one per collaborator Store and
// reuse it for the lifetime of the process.
type Engine struct {
	store   Store
	planner *planner.Planner
}

// New builds an Engine over store.
func New(s Store) *Engine {
	return &Engine{store: s, planner: planner.New(s)}
}

// AnalyzeHeights groups a project's rooms by ceiling height and reports
// each group's merge admissibility. Read-only; never persists.
func (e *Engine) AnalyzeHeights(ctx context.Context, projectID string) (model.HeightAnalysis, error) {
	return grouper.AnalyzeHeights(ctx, e.store, projectID)
}

// AnalyzeOrientations runs every applicable candidate strategy against a
// project's rooms and returns them ranked by waste percentage. Read-only;
// never persists.
func (e *Engine) AnalyzeOrientations(ctx context.Context, projectID string, kind model.PlanKind, spec model.PanelSpec) ([]model.StrategyResult, error) {
	return strategy.AnalyzeOrientations(ctx, e.store, projectID, kind, spec.Normalize(kind))
}

// GenerateCeiling runs the chosen (or Auto-recommended) orientation
// strategy and persists the winning panel layout for every eligible room.
func (e *Engine) GenerateCeiling(ctx context.Context, projectID string, params model.GenerationParams) (model.GenerationReport, error) {
	return e.planner.GenerateCeiling(ctx, projectID, params)
}

// GenerateFloor is identical to GenerateCeiling but restricted to rooms
// whose floor_type is "Panel".
func (e *Engine) GenerateFloor(ctx context.Context, projectID string, params model.GenerationParams) (model.GenerationReport, error) {
	return e.planner.GenerateFloor(ctx, projectID, params)
}
