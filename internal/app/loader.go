package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/protedit/internal/molecule"
	"github.com/philipparndt/protedit/pkg/watcher"
)

// watchDebounce is the quiet period after the last write before a reload
const watchDebounce = 500 * time.Millisecond

// startLoad loads the structure in the background. The result is picked up
// by applyLoadedStructure on the main thread.
func (app *App) startLoad() {
	// If already loading, skip
	if app.FileWatch.isLoading || app.FileWatch.source == "" {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	fmt.Printf("Loading structure %s...\n", app.FileWatch.source)
	app.FileWatch.pending = molecule.LoadAsync(app.ctx, app.FileWatch.source)
}

// applyLoadedStructure applies a finished load (must be called on main thread)
func (app *App) applyLoadedStructure() {
	if app.FileWatch.pending == nil {
		return
	}

	var res molecule.Result
	select {
	case res = <-app.FileWatch.pending:
	default:
		return
	}
	app.FileWatch.pending = nil
	app.FileWatch.isLoading = false

	if res.Err != nil {
		app.session.Report(fmt.Errorf("failed to load structure: %w", res.Err))
		return
	}

	// Only frame on the first load so reloads keep the current view
	first := app.session.View() == nil
	app.session.SetStructure(res.Structure, res.Source)
	app.session.Sync()
	if first {
		app.frameBounds(app.backend.Bounds())
	}

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	fmt.Printf("Structure loaded in %.2fs\n", elapsed.Seconds())
}

// setupFileWatcher reloads local structure files when they change
func (app *App) setupFileWatcher() error {
	if app.FileWatch.source == "" || molecule.IsURL(app.FileWatch.source) {
		return nil
	}

	fw, err := watcher.New(watchDebounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	app.FileWatch.reload = make(chan struct{}, 1)
	callback := func(changedFile string) {
		fmt.Printf("\nFile changed: %s\n", changedFile)
		select {
		case app.FileWatch.reload <- struct{}{}:
		default:
		}
	}

	if err := fw.Add(app.FileWatch.source, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", app.FileWatch.source, err)
	}
	fmt.Printf("Watching file for changes: %s\n", app.FileWatch.source)

	fw.Start(app.ctx)
	app.FileWatch.fileWatcher = fw
	return nil
}

// checkReload starts a reload when the watcher signalled a change. While a
// load is running the signal stays queued, so a write that lands mid-load
// triggers another load once the current one is applied.
func (app *App) checkReload() {
	if app.FileWatch.isLoading {
		return
	}
	select {
	case <-app.FileWatch.reload:
		app.startLoad()
	default:
	}
}
