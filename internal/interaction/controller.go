// Package interaction turns pointer and keyboard input into scene and
// selection changes, independent of the windowing backend.
package interaction

import (
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/internal/selection"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// DefaultRotateStep is the arrow-key rotation in degrees
const DefaultRotateStep = 5.0

// State is the gesture state of a controller
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Key is a keyboard key the controller reacts to
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Hit is the result of picking at the pointer position
type Hit struct {
	ID    scene.ElementID
	Point geometry.Vector3
	OK    bool
}

// Pointer describes the pointer in world terms: what it hits and the ray
// through it, used to project drags onto the drag plane.
type Pointer struct {
	Hit Hit
	Ray geometry.Ray
}

// Controller is the Idle/Dragging state machine
type Controller struct {
	scene      *scene.Scene
	selection  *selection.Selection
	rotateStep float64

	state       State
	grabbed     scene.ElementID
	planePoint  geometry.Vector3
	planeNormal geometry.Vector3
	grabOffset  geometry.Vector3
}

// NewController creates a controller editing sc and sel
func NewController(sc *scene.Scene, sel *selection.Selection) *Controller {
	return &Controller{scene: sc, selection: sel, rotateStep: DefaultRotateStep}
}

// SetRotateStep changes the arrow-key rotation in degrees
func (c *Controller) SetRotateStep(deg float64) {
	if deg > 0 {
		c.rotateStep = deg
	}
}

// State returns the current gesture state
func (c *Controller) State() State {
	return c.state
}

// Grabbed returns the element being dragged
func (c *Controller) Grabbed() (scene.ElementID, bool) {
	return c.grabbed, c.state == Dragging
}

// NavigationEnabled reports whether the camera may orbit, pan or zoom.
// Navigation is suspended while an element is dragged.
func (c *Controller) NavigationEnabled() bool {
	return c.state != Dragging
}

// PointerDown starts a drag when the pointer is over an element. The drag
// plane passes through the hit point, facing the viewer. It reports whether
// the event was consumed.
func (c *Controller) PointerDown(p Pointer) bool {
	if !p.Hit.OK {
		return false
	}
	el, ok := c.scene.Element(p.Hit.ID)
	if !ok {
		return false
	}
	c.state = Dragging
	c.grabbed = el.ID
	c.planePoint = p.Hit.Point
	c.planeNormal = p.Ray.Direction.Mul(-1)
	c.grabOffset = el.Position.Sub(p.Hit.Point)
	c.selection.SetExactly(el.ID)
	return true
}

// PointerMove drags the grabbed element to where the pointer ray meets the
// drag plane. Connections touching it are marked for refresh.
func (c *Controller) PointerMove(p Pointer) bool {
	if c.state != Dragging {
		return false
	}
	point, ok := p.Ray.IntersectPlane(c.planePoint, c.planeNormal)
	if !ok {
		return true
	}
	pos := point.Add(c.grabOffset)
	if err := c.scene.Mutate(c.grabbed, scene.Mutation{SetPosition: &pos}); err != nil {
		// element vanished mid-drag
		c.release()
	}
	return true
}

// PointerUp ends a drag; the element stays selected
func (c *Controller) PointerUp() bool {
	if c.state != Dragging {
		return false
	}
	c.release()
	return true
}

func (c *Controller) release() {
	c.state = Idle
	c.grabbed = ""
}

// DoubleClick toggles the element under the pointer. Empty space is ignored.
func (c *Controller) DoubleClick(h Hit) bool {
	if !h.OK || !c.scene.Has(h.ID) {
		return false
	}
	c.selection.Toggle(h.ID)
	return true
}

// Key rotates the single selected element: Left/Right about Y, Up/Down
// about X. Ignored unless exactly one element is selected.
func (c *Controller) Key(k Key) bool {
	ids := c.selection.IDs()
	if len(ids) != 1 {
		return false
	}
	step := geometry.Radians(c.rotateStep)
	var delta geometry.Euler
	switch k {
	case KeyLeft:
		delta = geometry.Around(geometry.AxisY, -step)
	case KeyRight:
		delta = geometry.Around(geometry.AxisY, step)
	case KeyUp:
		delta = geometry.Around(geometry.AxisX, -step)
	case KeyDown:
		delta = geometry.Around(geometry.AxisX, step)
	default:
		return false
	}
	return c.scene.Mutate(ids[0], scene.Mutation{Rotate: &delta}) == nil
}
