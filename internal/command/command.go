// Package command holds the editor operations as plain values and the Editor
// that validates and applies them to a scene and its selection.
package command

import (
	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/scene"
)

// Command is one editor operation
type Command interface {
	Name() string
}

// AddHelix adds an alpha helix of the given length. Zero uses the catalogue
// default.
type AddHelix struct {
	Length float64
}

// AddSheet adds a beta sheet. Zero values use the catalogue defaults.
type AddSheet struct {
	Length float64
	Width  float64
}

// RemoveSelected deletes the selected elements and their connections
type RemoveSelected struct{}

// RotateSelected turns every selected element by 45 degrees about Z
type RotateSelected struct{}

// RecolorSelected sets the base colour of the selected elements. A nil
// Color picks a random colour per element.
type RecolorSelected struct {
	Color *scene.Color
}

// ScaleSelected sets a uniform random scale in [1, 2) per selected element
type ScaleSelected struct{}

// ConnectSelected links exactly two selected elements
type ConnectSelected struct{}

// Select replaces the selection
type Select struct {
	IDs []scene.ElementID
}

// Toggle flips the selection state of one element
type Toggle struct {
	ID scene.ElementID
}

// ClearSelection empties the selection
type ClearSelection struct{}

// Export serializes the scene and hands the document to Sink
type Export struct {
	Sink export.Sink
}

func (AddHelix) Name() string        { return "add-helix" }
func (AddSheet) Name() string        { return "add-sheet" }
func (RemoveSelected) Name() string  { return "remove" }
func (RotateSelected) Name() string  { return "rotate" }
func (RecolorSelected) Name() string { return "recolor" }
func (ScaleSelected) Name() string   { return "scale" }
func (ConnectSelected) Name() string { return "connect" }
func (Select) Name() string          { return "select" }
func (Toggle) Name() string          { return "toggle" }
func (ClearSelection) Name() string  { return "clear" }
func (Export) Name() string          { return "export" }
