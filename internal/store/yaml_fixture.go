package store

import (
	"fmt"
	"os"

	"github.com/piwi3910/panelplan/internal/model"
	"gopkg.in/yaml.v3"
)

// yamlFixture is the human-editable room-fixture shape loaded by
// LoadRoomsFromYAML, a friendlier alternative to hand-writing the JSON
// wire format for tests and CLI demo runs.
type yamlFixture struct {
	Rooms []yamlRoom `yaml:"rooms"`
}

type yamlRoom struct {
	ID               string           `yaml:"id"`
	Polygon          []yamlPoint      `yaml:"polygon"`
	Height           *float64         `yaml:"height,omitempty"`
	FloorType        string           `yaml:"floor_type,omitempty"`
	CeilingThickness *float64         `yaml:"ceiling_thickness,omitempty"`
	FloorThickness   *float64         `yaml:"floor_thickness,omitempty"`
	CeilingMaterial  string           `yaml:"ceiling_material,omitempty"`
	FloorMaterial    string           `yaml:"floor_material,omitempty"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadRoomsFromYAML reads a YAML fixture file into a slice of model.Room.
// The canonical wire format remains JSON; YAML exists only as the
// human-editable fixture format used by tests and the CLI.
func LoadRoomsFromYAML(path string) ([]model.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rooms yaml: %w", err)
	}

	var fixture yamlFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("load rooms yaml: decoding %s: %w", path, err)
	}

	rooms := make([]model.Room, 0, len(fixture.Rooms))
	for _, yr := range fixture.Rooms {
		polygon := make(model.Outline, len(yr.Polygon))
		for i, p := range yr.Polygon {
			polygon[i] = model.Point2D{X: p.X, Y: p.Y}
		}
		floorType := model.FloorType(yr.FloorType)
		if floorType == "" {
			floorType = model.FloorTypePanel
		}
		rooms = append(rooms, model.Room{
			ID:               yr.ID,
			Polygon:          polygon,
			Height:           yr.Height,
			FloorType:        floorType,
			CeilingThickness: yr.CeilingThickness,
			FloorThickness:   yr.FloorThickness,
			CeilingMaterial:  yr.CeilingMaterial,
			FloorMaterial:    yr.FloorMaterial,
		})
	}
	return rooms, nil
}
