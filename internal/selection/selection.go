// Package selection tracks which scene elements are chosen for the next
// operation and decides how they are highlighted.
package selection

import (
	"slices"

	"github.com/philipparndt/protedit/internal/scene"
)

// DefaultHighlight is the reserved colour selected elements are drawn in
var DefaultHighlight = scene.Color{R: 255}

// Selection is an ordered set of element IDs. Insertion order decides which
// element is the first and which the second endpoint of a connection.
type Selection struct {
	ids       []scene.ElementID
	highlight scene.Color
	onChange  func()
}

// New creates an empty selection using the given highlight colour
func New(highlight scene.Color) *Selection {
	return &Selection{highlight: highlight}
}

// OnChange registers a callback run after every change to the selection
func (s *Selection) OnChange(fn func()) {
	s.onChange = fn
}

// Toggle removes id if selected, otherwise appends it
func (s *Selection) Toggle(id scene.ElementID) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	} else {
		s.ids = append(s.ids, id)
	}
	s.changed()
}

// SetExactly replaces the selection. Duplicates keep their first position.
func (s *Selection) SetExactly(ids ...scene.ElementID) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		if !slices.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
	s.changed()
}

// Clear empties the selection
func (s *Selection) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = s.ids[:0]
	s.changed()
}

// Prune drops every id for which exists returns false
func (s *Selection) Prune(exists func(scene.ElementID) bool) {
	before := len(s.ids)
	s.ids = slices.DeleteFunc(s.ids, func(id scene.ElementID) bool { return !exists(id) })
	if len(s.ids) != before {
		s.changed()
	}
}

// Contains reports whether id is selected
func (s *Selection) Contains(id scene.ElementID) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids in insertion order
func (s *Selection) IDs() []scene.ElementID {
	if len(s.ids) == 0 {
		return nil
	}
	return slices.Clone(s.ids)
}

// Len returns the number of selected elements
func (s *Selection) Len() int {
	return len(s.ids)
}

// Highlight returns the colour used for selected elements
func (s *Selection) Highlight() scene.Color {
	return s.highlight
}

// DisplayColor returns the colour an element is drawn with: the highlight
// when selected, its base colour otherwise.
func (s *Selection) DisplayColor(id scene.ElementID, base scene.Color) scene.Color {
	if s.Contains(id) {
		return s.highlight
	}
	return base
}

func (s *Selection) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
