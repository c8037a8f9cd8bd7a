// Package app is the raylib editor window
package app

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/internal/config"
	"github.com/philipparndt/protedit/internal/measurement"
)

// ViewSettings holds display settings
type ViewSettings struct {
	showGrid bool
}

type App struct {
	Camera      CameraState
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState

	ctx     context.Context
	backend *raylibBackend
	session *Session
}

// Run opens the editor window and blocks until it is closed. source is an
// optional structure path or URL loaded in the background.
func Run(ctx context.Context, cfg config.Config, source string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Initialize window
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "protedit")
	defer rl.CloseWindow()
	rl.SetExitKey(rl.KeyNull) // ESC clears the selection; close via window button or Ctrl+C
	rl.SetTargetFPS(60)

	app := &App{
		ctx:       ctx,
		View:      ViewSettings{showGrid: true},
		FileWatch: FileWatchState{source: source},
		UI:        UIState{font: rl.GetFontDefault()},
	}
	app.Camera.camera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.backend = newRaylibBackend(&app.Camera.camera)
	defer app.backend.Close()

	session, err := NewSession(cfg, app.backend)
	if err != nil {
		return err
	}
	app.session = session
	app.frameBounds(app.backend.Bounds())

	// Set up file watching
	if err := app.setupFileWatcher(); err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
	} else if app.FileWatch.fileWatcher != nil {
		defer app.FileWatch.fileWatcher.Close()
	}
	app.startLoad()

	// Main loop
	for !rl.WindowShouldClose() {
		// Check for Ctrl+C to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		app.checkReload()
		// Apply loaded structure if ready (must be on main thread)
		app.applyLoadedStructure()

		// Update
		app.handleInput()
		if app.session.Spinning() {
			app.doSpin(rl.GetFrameTime())
		}
		app.updateCamera()
		app.session.Sync()

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		rl.BeginMode3D(app.Camera.camera)
		if app.View.showGrid {
			app.drawGrid()
		}
		app.backend.Render()
		rl.EndMode3D()

		measurement.Draw(app.Camera.camera, app.session.SelectedPositions(), app.UI.font)
		app.drawUI()

		rl.EndDrawing()
	}
	return nil
}
