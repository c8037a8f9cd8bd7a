package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/internal/molecule"
	"github.com/philipparndt/protedit/pkg/watcher"
)

// CameraState holds the orbit camera
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	center        rl.Vector3 // Center of the framed content
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
}

// InteractionState holds mouse state between frames
type InteractionState struct {
	mouseDownPos  rl.Vector2
	mouseMoved    bool
	isPanning     bool
	isOrbiting    bool
	lastClickTime time.Time
	lastClickID   string
	hoveredID     string
}

// FileWatchState holds structure loading and reload state
type FileWatchState struct {
	source           string           // Structure path or URL, empty for none
	fileWatcher      *watcher.Watcher // Reloads local structures on change
	reload           chan struct{}    // Signalled by the watcher goroutine
	pending          <-chan molecule.Result
	isLoading        bool
	loadingStartTime time.Time
}

// UIState holds UI-related state
type UIState struct {
	font     rl.Font
	showHelp bool
}
