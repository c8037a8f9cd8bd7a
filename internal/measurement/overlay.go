// Package measurement draws distance and angle annotations between selected
// atoms on top of the 3D view.
package measurement

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/pkg/analysis"
	"github.com/philipparndt/protedit/pkg/geometry"
)

const (
	markerRadius  = 4
	lineThickness = 2
	labelFontSize = 16
	labelPadding  = 4
)

// Annotation is one label of the overlay, anchored in world space
type Annotation struct {
	Text   string
	Anchor geometry.Vector3
}

// Annotate returns the labels for a chain of points: the length of every
// segment at its midpoint and, for exactly three points, the angle at the
// middle one.
func Annotate(points []geometry.Vector3) []Annotation {
	var out []Annotation
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		out = append(out, Annotation{
			Text:   analysis.FormatMeasurement(analysis.Distance(a, b), ""),
			Anchor: a.Lerp(b, 0.5),
		})
	}
	if len(points) == 3 {
		out = append(out, Annotation{
			Text:   fmt.Sprintf("%.1f°", analysis.Angle(points[0], points[1], points[2])),
			Anchor: points[1],
		})
	}
	return out
}

// Draw renders the chain of points and its annotations in screen space. Call
// it outside BeginMode3D.
func Draw(camera rl.Camera3D, points []geometry.Vector3, font rl.Font) {
	if len(points) < 2 {
		return
	}

	screen := make([]rl.Vector2, len(points))
	for i, p := range points {
		screen[i] = toScreen(p, camera)
	}

	for i := 1; i < len(screen); i++ {
		rl.DrawLineEx(screen[i-1], screen[i], lineThickness, rl.Yellow)
	}
	for _, p := range screen {
		rl.DrawCircleLines(int32(p.X), int32(p.Y), markerRadius, rl.Yellow)
		rl.DrawCircle(int32(p.X), int32(p.Y), markerRadius-1, rl.Yellow)
	}

	for _, a := range Annotate(points) {
		label := Label{Text: a.Text, ScreenPos: toScreen(a.Anchor, camera), Color: rl.Yellow}
		label.Draw(font, labelFontSize, labelPadding)
	}
}

func toScreen(p geometry.Vector3, camera rl.Camera3D) rl.Vector2 {
	return rl.GetWorldToScreen(rl.Vector3{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}, camera)
}
