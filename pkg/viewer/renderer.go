// Package viewer holds the non-raylib drawing backends: a fyne widget for
// the desktop editor and a software rasteriser for snapshots.
package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/protedit/internal/interaction"
	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// SceneView is a fyne widget drawing primitives as a depth-shaded wireframe.
// Drags on an element move it through the interaction controller; drags on
// empty space orbit the camera.
type SceneView struct {
	widget.BaseWidget
	*render.Store

	camera     *render.Camera
	controller *interaction.Controller
	onChanged  func()
	onTapped   func(id string)

	lines     []*canvas.Line
	width     float64
	height    float64
	dragStart *fyne.Position
	grabbing  bool
}

// NewSceneView creates an empty scene view
func NewSceneView() *SceneView {
	v := &SceneView{
		Store:  render.NewStore(),
		camera: render.NewCamera(geometry.NewBoundingBox()),
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetController routes pointer gestures to c
func (v *SceneView) SetController(c *interaction.Controller) {
	v.controller = c
}

// OnChanged registers a callback run after a gesture changed the scene
func (v *SceneView) OnChanged(fn func()) {
	v.onChanged = fn
}

// OnTapped registers a callback for single taps on a primitive
func (v *SceneView) OnTapped(fn func(id string)) {
	v.onTapped = fn
}

// Camera returns the view camera
func (v *SceneView) Camera() *render.Camera {
	return v.camera
}

// FrameAll points the camera at everything in the view
func (v *SceneView) FrameAll() {
	v.camera.Frame(v.Bounds())
	v.Render()
}

// HitTest picks the nearest pickable primitive at a widget position
func (v *SceneView) HitTest(x, y float64) (string, geometry.Vector3, bool) {
	return render.HitTest(v.Store, v.camera, x, y, v.width, v.height)
}

// CreateRenderer creates the renderer for the widget
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	return &sceneViewRenderer{view: v}
}

// Render projects every primitive edge for the current size
func (v *SceneView) Render() {
	if v.width <= 0 || v.height <= 0 {
		return
	}
	v.lines = v.lines[:0]

	v.Each(func(p render.Primitive, world geometry.Mesh) {
		base := p.Color.RGBA()
		for _, e := range world.Edges {
			x1, y1, z1 := v.camera.Project(e[0], v.width, v.height)
			x2, y2, z2 := v.camera.Project(e[1], v.width, v.height)

			// fade edges with distance from the camera
			depth := (z1 + z2) / 2
			f := math.Max(0.35, math.Min(1, 1.5-depth/(v.camera.Distance*2)))

			line := canvas.NewLine(color.RGBA{
				R: uint8(float64(base.R) * f),
				G: uint8(float64(base.G) * f),
				B: uint8(float64(base.B) * f),
				A: 255,
			})
			line.StrokeWidth = 1.5
			line.Position1 = fyne.NewPos(float32(x1), float32(y1))
			line.Position2 = fyne.NewPos(float32(x2), float32(y2))
			v.lines = append(v.lines, line)
		}
	})

	v.Refresh()
}

func (v *SceneView) pointer(pos fyne.Position) interaction.Pointer {
	x, y := float64(pos.X), float64(pos.Y)
	p := interaction.Pointer{Ray: v.camera.Ray(x, y, v.width, v.height)}
	if id, point, ok := v.HitTest(x, y); ok {
		p.Hit = interaction.Hit{ID: scene.ElementID(id), Point: point, OK: true}
	}
	return p
}

func (v *SceneView) changed() {
	if v.onChanged != nil {
		v.onChanged()
	}
}

// Dragged moves the grabbed element or orbits the camera
func (v *SceneView) Dragged(event *fyne.DragEvent) {
	if v.dragStart == nil {
		start := event.Position.Subtract(event.Dragged)
		v.dragStart = &start
		if v.controller != nil && v.controller.PointerDown(v.pointer(start)) {
			v.grabbing = true
			v.changed()
		}
	}

	switch {
	case v.grabbing:
		if v.controller.PointerMove(v.pointer(event.Position)) {
			v.changed()
		}
	case v.controller == nil || v.controller.NavigationEnabled():
		v.camera.Rotate(float64(-event.Dragged.DY)*0.01, float64(-event.Dragged.DX)*0.01)
		v.Render()
	}
}

// DragEnd finishes the gesture
func (v *SceneView) DragEnd() {
	if v.grabbing {
		v.controller.PointerUp()
		v.changed()
	}
	v.dragStart = nil
	v.grabbing = false
}

// Tapped reports the primitive under the pointer
func (v *SceneView) Tapped(event *fyne.PointEvent) {
	if v.onTapped == nil {
		return
	}
	if id, _, ok := v.HitTest(float64(event.Position.X), float64(event.Position.Y)); ok {
		v.onTapped(id)
	}
}

// DoubleTapped toggles the element under the pointer
func (v *SceneView) DoubleTapped(event *fyne.PointEvent) {
	if v.controller == nil {
		return
	}
	if v.controller.DoubleClick(v.pointer(event.Position).Hit) {
		v.changed()
	}
}

// Scrolled zooms the camera
func (v *SceneView) Scrolled(event *fyne.ScrollEvent) {
	if v.controller != nil && !v.controller.NavigationEnabled() {
		return
	}
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.Render()
}

// sceneViewRenderer implements fyne.WidgetRenderer
type sceneViewRenderer struct {
	view    *SceneView
	objects []fyne.CanvasObject
}

func (r *sceneViewRenderer) Layout(size fyne.Size) {
	r.view.width = float64(size.Width)
	r.view.height = float64(size.Height)
	r.view.Render()
}

func (r *sceneViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sceneViewRenderer) Refresh() {
	r.objects = r.objects[:0]
	for _, line := range r.view.lines {
		r.objects = append(r.objects, line)
	}
	canvas.Refresh(r.view)
}

func (r *sceneViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *sceneViewRenderer) Destroy() {}
