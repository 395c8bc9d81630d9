package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/panelplan"
	"github.com/piwi3910/panelplan/internal/model"
	"github.com/piwi3910/panelplan/internal/store"
	"github.com/spf13/cobra"
)

// commonFlags are shared by every subcommand: which project file backs
// the run, which project ID within it to operate on, and an optional
// rooms fixture (JSON or YAML) to seed before the operation runs.
type commonFlags struct {
	storePath string
	projectID string
	roomsPath string
	outPath   string
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().StringVar(&f.storePath, "store", "panelplan.json", "path to the JSON project store")
	cmd.Flags().StringVar(&f.projectID, "project", "default", "project ID within the store")
	cmd.Flags().StringVar(&f.roomsPath, "rooms", "", "optional room fixture (.json or .yaml) to seed before running")
	cmd.Flags().StringVar(&f.outPath, "out", "", "write JSON result here instead of stdout")
}

// openStore opens the JSON project store at f.storePath, seeding rooms
// from f.roomsPath first when one is given.
func openStore(f commonFlags) (*store.JSONFileStore, error) {
	s, err := store.OpenJSONFileStore(f.storePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if f.roomsPath == "" {
		return s, nil
	}

	rooms, err := loadRooms(f.roomsPath)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	if err := s.SeedRooms(f.projectID, rooms); err != nil {
		return nil, fmt.Errorf("seed rooms: %w", err)
	}
	return s, nil
}

// loadRooms dispatches to the YAML or JSON room-fixture loader by
// extension: the on-disk wire format stays JSON, YAML is allowed for
// hand-editable fixtures.
func loadRooms(path string) ([]model.Room, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return store.LoadRoomsFromYAML(path)
	default:
		return loadRoomsJSON(path)
	}
}

func loadRoomsJSON(path string) ([]model.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Rooms []model.Room `json:"rooms"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc.Rooms, nil
}

// writeResult marshals v to indented JSON and writes it to the file at
// out, or stdout when out is empty.
func writeResult(out string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

// newEngine builds a panelplan.Engine over the given store.
func newEngine(s *store.JSONFileStore) *panelplan.Engine {
	return panelplan.New(s)
}

func ctx() context.Context {
	return context.Background()
}
