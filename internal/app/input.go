package app

import (
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/internal/command"
	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/interaction"
	"github.com/philipparndt/protedit/internal/molecule"
	"github.com/philipparndt/protedit/internal/scene"
)

const (
	dragThreshold       = 3 // pixels before a press becomes a drag
	doubleClickInterval = 400 * time.Millisecond
	sceneFile           = "scene.json"
	structureFile       = "structure.json"
)

// pointer describes the mouse position in world terms
func (app *App) pointer(pos rl.Vector2) interaction.Pointer {
	p := interaction.Pointer{Ray: screenRay(pos, app.Camera.camera)}
	if id, point, ok := app.backend.HitTest(float64(pos.X), float64(pos.Y)); ok {
		p.Hit = interaction.Hit{ID: scene.ElementID(id), Point: point, OK: true}
	}
	return p
}

// handleInput processes user input
func (app *App) handleInput() {
	if app.session.Prompt() != nil {
		app.handlePromptInput()
		return
	}
	app.handleMouse()
	app.handleKeys()
}

func (app *App) handleMouse() {
	ctrl := app.session.Controller()
	mouse := rl.GetMousePosition()
	if id, _, ok := app.backend.HitTest(float64(mouse.X), float64(mouse.Y)); ok {
		app.Interaction.hoveredID = id
	} else {
		app.Interaction.hoveredID = ""
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = mouse
		app.Interaction.mouseMoved = false
		// Pan if Shift is pressed
		app.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		app.Interaction.isOrbiting = false
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if !app.Interaction.mouseMoved {
			d := rl.Vector2Subtract(mouse, app.Interaction.mouseDownPos)
			if math32.Abs(d.X) > dragThreshold || math32.Abs(d.Y) > dragThreshold {
				app.Interaction.mouseMoved = true
				// The drag starts where the button went down
				if !app.Interaction.isPanning && !ctrl.PointerDown(app.pointer(app.Interaction.mouseDownPos)) {
					app.Interaction.isOrbiting = true
				}
			}
		}

		delta := rl.GetMouseDelta()
		switch {
		case !app.Interaction.mouseMoved:
		case app.Interaction.isPanning:
			app.doPan(delta)
		case ctrl.State() == interaction.Dragging:
			ctrl.PointerMove(app.pointer(mouse))
		case app.Interaction.isOrbiting && ctrl.NavigationEnabled():
			app.doOrbit(delta)
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		ctrl.PointerUp()
		if !app.Interaction.mouseMoved {
			app.handleClick(mouse)
		}
		app.Interaction.isPanning = false
		app.Interaction.isOrbiting = false
	}

	// Middle mouse button always pans
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		app.doPan(rl.GetMouseDelta())
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && ctrl.NavigationEnabled() {
		app.doZoom(wheel)
	}
}

// handleClick toggles atoms on a single click and elements on a double click
func (app *App) handleClick(pos rl.Vector2) {
	p := app.pointer(pos)
	id := string(p.Hit.ID)

	now := time.Now()
	double := p.Hit.OK && id == app.Interaction.lastClickID && now.Sub(app.Interaction.lastClickTime) < doubleClickInterval
	app.Interaction.lastClickID = id
	app.Interaction.lastClickTime = now

	if !p.Hit.OK {
		return
	}
	if app.session.Click(id) {
		return
	}
	if double {
		app.session.Controller().DoubleClick(p.Hit)
		app.Interaction.lastClickID = ""
	}
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func (app *App) handleKeys() {
	s := app.session
	ctx := app.ctx

	// Camera view presets
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.frameBounds(app.backend.Bounds())
	}
	if rl.IsKeyPressed(rl.KeyKp7) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyKp1) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyKp3) {
		app.setCameraSideView()
	}

	// Command bar
	switch {
	case rl.IsKeyPressed(rl.KeyH):
		s.AskHelix()
	case rl.IsKeyPressed(rl.KeyS):
		s.AskSheet()
	case rl.IsKeyPressed(rl.KeyDelete), rl.IsKeyPressed(rl.KeyBackspace):
		s.Remove(ctx)
	case rl.IsKeyPressed(rl.KeyR):
		s.Rotate(ctx)
	case rl.IsKeyPressed(rl.KeyC):
		s.Recolor(ctx)
	case rl.IsKeyPressed(rl.KeyT):
		s.Transform(ctx)
	case rl.IsKeyPressed(rl.KeyJ):
		s.Run(ctx, command.ConnectSelected{})
	case rl.IsKeyPressed(rl.KeyE) && shiftDown():
		s.SaveFile(ctx, sceneFile)
	case rl.IsKeyPressed(rl.KeyE):
		s.Save(ctx)
	case rl.IsKeyPressed(rl.KeyX):
		s.ExportStructure(ctx, export.FileSink{Path: structureFile})
	case rl.IsKeyPressed(rl.KeyEscape):
		s.Run(ctx, command.ClearSelection{})
	}

	// Structure view
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		s.SetRepresentation(molecule.Cartoon)
	case rl.IsKeyPressed(rl.KeyTwo):
		s.SetRepresentation(molecule.Stick)
	case rl.IsKeyPressed(rl.KeyThree):
		s.SetRepresentation(molecule.Line)
	case rl.IsKeyPressed(rl.KeySpace):
		s.ToggleSpin()
	case rl.IsKeyPressed(rl.KeyD):
		s.AddDemoChain()
	}

	// Display toggles
	if rl.IsKeyPressed(rl.KeyG) {
		app.View.showGrid = !app.View.showGrid
	}
	if rl.IsKeyPressed(rl.KeyW) {
		app.backend.edges = !app.backend.edges
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		app.UI.showHelp = !app.UI.showHelp
	}

	// Arrow keys rotate the single selected element
	ctrl := s.Controller()
	for key, k := range map[int32]interaction.Key{
		rl.KeyLeft:  interaction.KeyLeft,
		rl.KeyRight: interaction.KeyRight,
		rl.KeyUp:    interaction.KeyUp,
		rl.KeyDown:  interaction.KeyDown,
	} {
		if rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key) {
			ctrl.Key(k)
		}
	}
}

// handlePromptInput edits the open prompt. Keys are not passed on to the
// command bar while it is open.
func (app *App) handlePromptInput() {
	s := app.session

	// Use character input instead of physical keys to work across all keyboard layouts
	for char := rl.GetCharPressed(); char != 0; char = rl.GetCharPressed() {
		r := rune(char)
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' {
			s.TypeRune(r)
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyBackspace), rl.IsKeyPressedRepeat(rl.KeyBackspace):
		s.Backspace()
	case rl.IsKeyPressed(rl.KeyTab):
		s.NextField()
	case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeyKpEnter):
		s.SubmitPrompt(app.ctx)
	case rl.IsKeyPressed(rl.KeyEscape):
		s.CancelPrompt()
	}
}
