// Package export turns a scene into the flat JSON document used for saving
// and delivers it to a file or an HTTP endpoint.
package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// MIMEType is the content type of a serialized document
const MIMEType = "application/json"

// ErrInvalidDocument is returned when a document cannot be read back
var ErrInvalidDocument = errors.New("invalid scene document")

// Vector is a JSON triple
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation is an Euler rotation in radians with its application order
type Rotation struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Order string  `json:"order"`
}

// Record is one exported element. Field order is part of the format.
type Record struct {
	Type     scene.Kind  `json:"type"`
	Position Vector      `json:"position"`
	Rotation Rotation    `json:"rotation"`
	Scale    Vector      `json:"scale"`
	Color    scene.Color `json:"color"`
}

// NewRecord converts an element into its export record
func NewRecord(e scene.Element) Record {
	return Record{
		Type:     e.Kind,
		Position: vector(e.Position),
		Rotation: Rotation{X: e.Rotation.X, Y: e.Rotation.Y, Z: e.Rotation.Z, Order: geometry.EulerOrder},
		Scale:    vector(e.Scale),
		Color:    e.BaseColor,
	}
}

func vector(v geometry.Vector3) Vector {
	return Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector3 converts the record vector back into geometry space
func (v Vector) Vector3() geometry.Vector3 {
	return geometry.NewVector3(v.X, v.Y, v.Z)
}

// Records converts elements in order. Connections are never exported.
func Records(elements []scene.Element) []Record {
	out := make([]Record, 0, len(elements))
	for _, e := range elements {
		out = append(out, NewRecord(e))
	}
	return out
}

// Serialize renders the elements as an indented JSON array in addition
// order. An empty scene yields "[]".
func Serialize(elements []scene.Element) ([]byte, error) {
	data, err := json.MarshalIndent(Records(elements), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode scene: %w", err)
	}
	return data, nil
}

// Parse reads a serialized document back into records
func Parse(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidDocument)
	}
	for i, r := range records {
		switch r.Type {
		case scene.KindHelix, scene.KindSheet:
		default:
			return nil, fmt.Errorf("%w: record %d has unknown type %q", ErrInvalidDocument, i, r.Type)
		}
		if r.Rotation.Order != "" && r.Rotation.Order != geometry.EulerOrder {
			return nil, fmt.Errorf("%w: record %d has unsupported rotation order %q", ErrInvalidDocument, i, r.Rotation.Order)
		}
	}
	return records, nil
}

// Summary counts the record types of a parsed document
func Summary(records []Record) scene.Counts {
	var c scene.Counts
	for _, r := range records {
		switch r.Type {
		case scene.KindHelix:
			c.Helices++
		case scene.KindSheet:
			c.Sheets++
		}
	}
	return c
}
