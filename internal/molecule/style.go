package molecule

import (
	"math"
	"slices"

	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/pdb"
)

// Representation is how an atom is drawn
type Representation string

const (
	Cartoon Representation = "cartoon"
	Stick   Representation = "stick"
	Line    Representation = "line"
	Hidden  Representation = "hidden"
)

// ParseRepresentation accepts the representation names used on the
// command line
func ParseRepresentation(s string) (Representation, bool) {
	r := Representation(s)
	switch r {
	case Cartoon, Stick, Line, Hidden:
		return r, true
	}
	return "", false
}

// Style is a representation with an optional fixed colour. Without a colour
// cartoons use the residue spectrum and sticks/lines the element colour.
type Style struct {
	Rep   Representation
	Color *scene.Color
}

var (
	green = scene.Color{G: 128}
	red   = scene.Color{R: 255}
)

// Styles used by the selection operations
var (
	DefaultStyle  = Style{Rep: Cartoon}
	SelectedStyle = Style{Rep: Stick, Color: &green}
	RecolorStyle  = Style{Rep: Stick, Color: &red}
)

// Selector picks atoms for SetStyle. The zero value matches nothing.
type Selector struct {
	all     bool
	serials []int
	chain   string
}

// All matches every atom
func All() Selector {
	return Selector{all: true}
}

// Serials matches atoms by serial number
func Serials(serials ...int) Selector {
	return Selector{serials: slices.Clone(serials)}
}

// Chain matches every atom of a chain
func Chain(id string) Selector {
	return Selector{chain: id}
}

// Matches reports whether the selector includes the atom
func (s Selector) Matches(a pdb.Atom) bool {
	switch {
	case s.all:
		return true
	case s.chain != "":
		return a.Chain == s.chain
	default:
		return slices.Contains(s.serials, a.Serial)
	}
}

var elementColors = map[string]scene.Color{
	"C": {R: 144, G: 144, B: 144},
	"N": {R: 48, G: 80, B: 248},
	"O": {R: 255, G: 13, B: 13},
	"S": {R: 255, G: 255, B: 48},
	"P": {R: 255, G: 128},
	"H": {R: 255, G: 255, B: 255},
}

// ElementColor returns the CPK-style colour of an element
func ElementColor(element string) scene.Color {
	if c, ok := elementColors[element]; ok {
		return c
	}
	return scene.Color{R: 255, G: 20, B: 147}
}

// Spectrum maps position i of n onto a rainbow from blue to red
func Spectrum(i, n int) scene.Color {
	t := 0.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	return hue((1 - t) * 240)
}

// hue converts a fully saturated HSV hue in degrees to RGB
func hue(h float64) scene.Color {
	x := 1 - math.Abs(math.Mod(h/60, 2)-1)
	var r, g, b float64
	switch {
	case h < 60:
		r, g = 1, x
	case h < 120:
		r, g = x, 1
	case h < 180:
		g, b = 1, x
	case h < 240:
		g, b = x, 1
	default:
		r, b = x, 1
	}
	return scene.Color{R: uint8(math.Round(r * 255)), G: uint8(math.Round(g * 255)), B: uint8(math.Round(b * 255))}
}
