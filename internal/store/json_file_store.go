package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/piwi3910/panelplan/internal/model"
)

// jsonFileDocument is the on-disk shape of a JSONFileStore's single file:
// one JSON document per persisted aggregate rather than a row-per-file
// scheme.
type jsonFileDocument struct {
	Rooms map[string][]model.Room          `json:"rooms"` // projectID -> rooms
	Plans map[string]map[string]model.Plan `json:"plans"` // projectID -> planKey -> Plan
}

// JSONFileStore is a Store backed by a single JSON file on disk: the
// whole document is read on open and rewritten atomically on every
// mutation.
type JSONFileStore struct {
	mu   sync.Mutex
	path string
	doc  jsonFileDocument
}

// OpenJSONFileStore loads path into a JSONFileStore, creating an empty
// document if the file does not yet exist.
func OpenJSONFileStore(path string) (*JSONFileStore, error) {
	s := &JSONFileStore{
		path: path,
		doc: jsonFileDocument{
			Rooms: make(map[string][]model.Room),
			Plans: make(map[string]map[string]model.Plan),
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open json store: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("open json store: decoding %s: %w", path, err)
	}
	if s.doc.Rooms == nil {
		s.doc.Rooms = make(map[string][]model.Room)
	}
	if s.doc.Plans == nil {
		s.doc.Plans = make(map[string]map[string]model.Plan)
	}
	return s, nil
}

// SeedRooms registers a project's room set, replacing any prior rooms and
// persisting immediately, sorted by ID.
func (s *JSONFileStore) SeedRooms(projectID string, rooms []model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]model.Room, len(rooms))
	copy(sorted, rooms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	s.doc.Rooms[projectID] = sorted
	return s.save()
}

// ListRooms returns the project's rooms, sorted by ID.
func (s *JSONFileStore) ListRooms(_ context.Context, projectID string) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := s.doc.Rooms[projectID]
	out := make([]model.Room, len(rooms))
	copy(out, rooms)
	return out, nil
}

// ReplacePanels overwrites a room's panel set and persists the document.
func (s *JSONFileStore) ReplacePanels(_ context.Context, projectID, roomID string, panels []model.Panel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proj, ok := s.doc.Plans[projectID]
	if !ok {
		proj = make(map[string]model.Plan)
		s.doc.Plans[projectID] = proj
	}
	key := "room:" + roomID
	plan := proj[key]
	plan.RoomID = roomID
	plan.Panels = panels
	proj[key] = plan
	return s.save()
}

// UpsertPlan creates or replaces a project's Plan and persists the document.
// A plan given with nil Panels keeps the panels already stored under its
// key (for example by an earlier ReplacePanels).
func (s *JSONFileStore) UpsertPlan(_ context.Context, projectID string, plan model.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Plans[projectID]; !ok {
		s.doc.Plans[projectID] = make(map[string]model.Plan)
	}
	key := planKey(plan)
	if plan.Panels == nil {
		plan.Panels = s.doc.Plans[projectID][key].Panels
	}
	s.doc.Plans[projectID][key] = plan
	return s.save()
}

// Plans returns a snapshot of every Plan stored for a project, sorted by key.
func (s *JSONFileStore) Plans(projectID string) []model.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	proj := s.doc.Plans[projectID]
	keys := make([]string, 0, len(proj))
	for k := range proj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.Plan, 0, len(keys))
	for _, k := range keys {
		out = append(out, proj[k])
	}
	return out
}

// save rewrites the whole document to disk. Caller must hold s.mu.
func (s *JSONFileStore) save() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save json store: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save json store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save json store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save json store: %w", err)
	}
	return nil
}
