package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jinzhu/copier"
	"github.com/philipparndt/protedit/pkg/geometry"
)

const (
	defaultSpawnExtent   = 10.0
	defaultBowMin        = 4.0
	defaultBowMax        = 6.0
	defaultCurveSegments = 20
)

// Scene owns every element and connection. All mutation goes through its
// methods; callers only ever see copies.
type Scene struct {
	elements    []*Element
	connections []*Connection

	catalog       Catalog
	rng           *rand.Rand
	spawnExtent   float64
	bowMin        float64
	bowMax        float64
	curveSegments int

	nextElement    int
	nextConnection int
}

// Option configures a Scene
type Option func(*Scene)

// WithRand injects the random source used for spawn positions, bow heights
// and random colours.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scene) { s.rng = rng }
}

// WithSeed gives each scene built with it a fresh deterministic PCG source
func WithSeed(seed uint64) Option {
	return func(s *Scene) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithCatalog replaces the built-in kind catalogue
func WithCatalog(cat Catalog) Option {
	return func(s *Scene) { s.catalog = cat }
}

// WithSpawnExtent sets the edge length of the cube new elements appear in
func WithSpawnExtent(extent float64) Option {
	return func(s *Scene) { s.spawnExtent = extent }
}

// WithBow sets the range connector bow heights are drawn from. Equal bounds
// give a fixed bow.
func WithBow(minBow, maxBow float64) Option {
	return func(s *Scene) { s.bowMin, s.bowMax = minBow, maxBow }
}

// WithCurveSegments sets how many segments connector curves are sampled into
func WithCurveSegments(n int) Option {
	return func(s *Scene) { s.curveSegments = n }
}

// New creates an empty scene. Without WithRand/WithSeed the random source is
// seeded from the clock.
func New(opts ...Option) *Scene {
	s := &Scene{
		catalog:       DefaultCatalog(),
		spawnExtent:   defaultSpawnExtent,
		bowMin:        defaultBowMin,
		bowMax:        defaultBowMax,
		curveSegments: defaultCurveSegments,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.bowMax < s.bowMin {
		s.bowMin, s.bowMax = s.bowMax, s.bowMin
	}
	return s
}

// Rand exposes the scene's random source so commands share one seedable stream
func (s *Scene) Rand() *rand.Rand {
	return s.rng
}

// Catalog returns the kind catalogue in use
func (s *Scene) Catalog() Catalog {
	return s.catalog
}

// Add creates an element of the given kind at a random position inside the
// spawn cube and appends it. No connection is created implicitly.
func (s *Scene) Add(kind Kind, params Params) (*Element, error) {
	def, ok := s.catalog.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if params.Length == 0 {
		params.Length = def.DefaultLength
	}
	if def.Shape == ShapeBox && params.Width == 0 {
		params.Width = def.DefaultWidth
	}
	if !validSize(params.Length) {
		return nil, fmt.Errorf("%w: length %v", ErrInvalidParams, params.Length)
	}

	e := &Element{
		Kind:      kind,
		Shape:     def.Shape,
		Length:    params.Length,
		Scale:     geometry.NewVector3(1, 1, 1),
		BaseColor: def.Color,
		Segments:  def.Segments,
	}
	switch def.Shape {
	case ShapeCylinder:
		e.Size = geometry.NewVector3(def.Radius*2, params.Length, def.Radius*2)
	case ShapeBox:
		if !validSize(params.Width) {
			return nil, fmt.Errorf("%w: width %v", ErrInvalidParams, params.Width)
		}
		e.Width = params.Width
		e.Size = geometry.NewVector3(params.Length, params.Width, def.Thickness)
	}

	half := s.spawnExtent / 2
	e.Position = geometry.NewVector3(
		s.rng.Float64()*s.spawnExtent-half,
		s.rng.Float64()*s.spawnExtent-half,
		s.rng.Float64()*s.spawnExtent-half,
	)

	s.nextElement++
	e.ID = ElementID(fmt.Sprintf("e%d", s.nextElement))
	s.elements = append(s.elements, e)

	out := *e
	return &out, nil
}

func validSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Remove deletes the referenced elements and every connection touching any
// of them. Known IDs are removed even when others are unknown; unknown IDs
// are reported as ErrUnknownElement.
func (s *Scene) Remove(ids ...ElementID) (int, error) {
	var errs []error
	removed := 0
	for _, id := range ids {
		idx := s.index(id)
		if idx < 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownElement, id))
			continue
		}
		s.elements = append(s.elements[:idx], s.elements[idx+1:]...)
		removed++

		kept := s.connections[:0]
		for _, c := range s.connections {
			if !c.Touches(id) {
				kept = append(kept, c)
			}
		}
		clear(s.connections[len(kept):])
		s.connections = kept
	}
	return removed, errors.Join(errs...)
}

// Mutate applies m to the element. Changes to position, rotation or scale
// mark touching connections for recomputation on the next Refresh.
func (s *Scene) Mutate(id ElementID, m Mutation) error {
	e := s.lookup(id)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	if m.SetPosition != nil {
		e.Position = *m.SetPosition
	}
	if m.Translate != nil {
		e.Position = e.Position.Add(*m.Translate)
	}
	if m.Rotate != nil {
		e.Rotation = e.Rotation.Add(*m.Rotate)
	}
	if m.SetScale != nil {
		e.Scale = *m.SetScale
	}
	if m.SetColor != nil {
		e.BaseColor = *m.SetColor
	}
	if m.movesGeometry() {
		for _, c := range s.connections {
			if c.Touches(id) {
				c.dirty = true
			}
		}
	}
	return nil
}

// Connect links a to b. The bow height is drawn once from the random source
// and kept, so the curve only changes when an endpoint moves.
func (s *Scene) Connect(a, b ElementID) (*Connection, error) {
	if a == b {
		return nil, ErrSelfConnection
	}
	ea, eb := s.lookup(a), s.lookup(b)
	if ea == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownElement, a)
	}
	if eb == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownElement, b)
	}

	bow := s.bowMin
	if s.bowMax > s.bowMin {
		bow += s.rng.Float64() * (s.bowMax - s.bowMin)
	}

	s.nextConnection++
	c := &Connection{
		ID:  ConnectionID(fmt.Sprintf("c%d", s.nextConnection)),
		A:   a,
		B:   b,
		Bow: bow,
	}
	s.recompute(c, ea, eb)
	s.connections = append(s.connections, c)
	return s.copyConnection(c), nil
}

// Refresh recomputes the curves of connections whose endpoints changed since
// the last call. It returns the IDs it recomputed.
func (s *Scene) Refresh() []ConnectionID {
	var refreshed []ConnectionID
	for _, c := range s.connections {
		if !c.dirty {
			continue
		}
		s.recompute(c, s.lookup(c.A), s.lookup(c.B))
		refreshed = append(refreshed, c.ID)
	}
	return refreshed
}

func (s *Scene) recompute(c *Connection, a, b *Element) {
	c.Samples = geometry.ComputeConnectorCurve(a.Anchor(), b.Anchor(), c.Bow, s.curveSegments)
	c.Revision++
	c.dirty = false
}

// Element returns a copy of the element with the given id
func (s *Scene) Element(id ElementID) (Element, bool) {
	e := s.lookup(id)
	if e == nil {
		return Element{}, false
	}
	return *e, true
}

// Has reports whether the element exists
func (s *Scene) Has(id ElementID) bool {
	return s.lookup(id) != nil
}

// Elements returns copies of all elements in addition order
func (s *Scene) Elements() []Element {
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = *e
	}
	return out
}

// Connections returns deep copies of all connections in creation order
func (s *Scene) Connections() []Connection {
	out := make([]Connection, 0, len(s.connections))
	for _, c := range s.connections {
		out = append(out, *s.copyConnection(c))
	}
	return out
}

func (s *Scene) copyConnection(c *Connection) *Connection {
	var out Connection
	if err := copier.CopyWithOption(&out, c, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen here
		panic(err)
	}
	return &out
}

// Len returns the number of elements
func (s *Scene) Len() int {
	return len(s.elements)
}

// Counts summarises the scene for the info panel
type Counts struct {
	Helices     int
	Sheets      int
	Connections int
}

func (c Counts) String() string {
	return fmt.Sprintf("Alpha helices: %d, Beta sheets: %d, Connections: %d", c.Helices, c.Sheets, c.Connections)
}

// Counts returns the live element and connection counts
func (s *Scene) Counts() Counts {
	counts := Counts{Connections: len(s.connections)}
	for _, e := range s.elements {
		switch e.Kind {
		case KindHelix:
			counts.Helices++
		case KindSheet:
			counts.Sheets++
		}
	}
	return counts
}

func (s *Scene) index(id ElementID) int {
	for i, e := range s.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) lookup(id ElementID) *Element {
	if i := s.index(id); i >= 0 {
		return s.elements[i]
	}
	return nil
}
