package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/protedit/internal/command"
	"github.com/philipparndt/protedit/internal/config"
	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/interaction"
	"github.com/philipparndt/protedit/internal/molecule"
	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/internal/selection"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/philipparndt/protedit/pkg/pdb"
	"github.com/philipparndt/protedit/pkg/viewer"
)

// spinStep is the camera yaw per frame while the structure spins
const spinStep = 0.01

type App struct {
	ctx    context.Context
	cfg    config.Config
	window fyne.Window

	editor     *command.Editor
	controller *interaction.Controller
	sceneView  *viewer.SceneView
	presenter  *render.Presenter

	structure    *molecule.View
	molPresenter *molecule.Presenter

	infoLabel      *widget.Label
	structureLabel *widget.Label
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.SceneOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("protedit")

	sc := scene.New(opts...)
	sel := selection.New(cfg.Highlight())

	appInstance := &App{
		ctx:            context.Background(),
		cfg:            cfg,
		window:         w,
		editor:         command.NewEditor(sc, sel),
		controller:     interaction.NewController(sc, sel),
		sceneView:      viewer.NewSceneView(),
		infoLabel:      widget.NewLabel(""),
		structureLabel: widget.NewLabel("No structure loaded"),
	}
	appInstance.controller.SetRotateStep(cfg.Editor.RotateStepDeg)
	appInstance.presenter = render.NewPresenter(appInstance.sceneView)
	appInstance.molPresenter = molecule.NewPresenter(appInstance.sceneView)

	appInstance.setupMainUI()

	// Load structure given as argument
	if len(os.Args) > 1 {
		appInstance.loadStructure(os.Args[1])
	}

	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.ShowAndRun()
}

func (a *App) setupMainUI() {
	a.sceneView.SetController(a.controller)
	a.sceneView.OnChanged(a.refresh)
	a.sceneView.OnTapped(a.tapped)

	a.infoLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.structureLabel.Wrapping = fyne.TextWrapWord

	commandBar := container.NewVBox(
		widget.NewLabel("Scene:"),
		widget.NewSeparator(),
		widget.NewButton("Add Alpha Helix", a.showAddHelix),
		widget.NewButton("Add Beta Sheet", a.showAddSheet),
		widget.NewButton("Remove Element", a.removeSelected),
		widget.NewButton("Rotate Element", a.rotateSelected),
		widget.NewButton("Change Color", a.recolorSelected),
		widget.NewButton("Transform Element", a.transformSelected),
		widget.NewButton("Connect Elements", func() { a.run(command.ConnectSelected{}) }),
		widget.NewButton("Clear Selection", func() { a.run(command.ClearSelection{}) }),
		widget.NewSeparator(),
		widget.NewButton("Save Scene", func() {
			a.run(command.Export{Sink: export.NewHTTPSink(a.cfg.Editor.SaveURL)})
		}),
		widget.NewButton("Save Scene As...", a.showSaveFile),
		widget.NewSeparator(),
		widget.NewLabel("Structure:"),
		widget.NewSeparator(),
		a.structureLabel,
		widget.NewButton("Open Structure", a.showOpenStructure),
		widget.NewButton("Load Default Structure", func() { a.loadStructure(molecule.DefaultSource) }),
		widget.NewButton("Add Demo Chain", a.addDemoChain),
		container.NewGridWithColumns(3,
			widget.NewButton("Cartoon", func() { a.setRepresentation(molecule.Cartoon) }),
			widget.NewButton("Stick", func() { a.setRepresentation(molecule.Stick) }),
			widget.NewButton("Line", func() { a.setRepresentation(molecule.Line) }),
		),
		widget.NewButton("Spin", a.toggleSpin),
		widget.NewButton("Export Atoms", a.showExportStructure),
	)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Double click an element to select it\n" +
			"• Drag an element to move it\n" +
			"• Arrow keys rotate a single selection\n" +
			"• Click an atom to select it\n" +
			"• Drag empty space to rotate the view\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	panel := container.NewVBox(commandBar, widget.NewSeparator(), instructions)
	panelScroll := container.NewVScroll(panel)
	panelScroll.SetMinSize(fyne.NewSize(260, 0))

	content := container.NewBorder(
		a.infoLabel, // top
		nil,         // bottom
		nil,         // left
		panelScroll, // right
		a.sceneView, // center
	)
	a.window.SetContent(content)
	a.window.Canvas().SetOnTypedKey(a.typedKey)

	// Render loop
	anim := fyne.NewAnimation(time.Second, func(float32) { a.tick() })
	anim.RepeatCount = fyne.AnimationRepeatForever
	anim.Curve = fyne.AnimationLinear
	anim.Start()

	a.refresh()
}

// tick runs once per animation frame
func (a *App) tick() {
	if a.structure != nil && a.structure.Spinning() {
		a.sceneView.Camera().Rotate(0, spinStep)
		a.sceneView.Render()
	}
}

// refresh pushes the scene and structure into the view and updates the labels
func (a *App) refresh() {
	a.presenter.Sync(a.editor.Scene(), a.editor.Selection())
	if a.structure != nil {
		a.molPresenter.Sync(a.structure)
		s := a.structure.Structure()
		a.structureLabel.SetText(fmt.Sprintf("%s: %d atoms, %d selected", s.ID, s.AtomCount(), len(a.structure.Selected())))
	}
	a.sceneView.Render()
	a.infoLabel.SetText(a.editor.Scene().Counts().String())
}

// showError reports precondition violations as information and everything
// else as an error
func (a *App) showError(err error) {
	var pre *command.PreconditionError
	if errors.As(err, &pre) {
		dialog.ShowInformation("protedit", pre.Message, a.window)
		return
	}
	dialog.ShowError(err, a.window)
}

func (a *App) run(cmd command.Command) {
	res, err := a.editor.Dispatch(a.ctx, cmd)
	if err != nil {
		a.showError(err)
	} else if res.Message != "" {
		fmt.Println(res.Message)
	}
	if _, ok := cmd.(command.Export); ok && err == nil {
		dialog.ShowInformation("Save Scene", res.Message, a.window)
	}
	a.refresh()
}

// hasAtomSelection routes the element buttons to the structure when atoms
// are selected
func (a *App) hasAtomSelection() bool {
	return a.structure != nil && len(a.structure.Selected()) > 0
}

func (a *App) atomOp(op func() error) {
	if err := op(); err != nil {
		a.showError(err)
	}
	a.refresh()
}

func (a *App) removeSelected() {
	if a.hasAtomSelection() {
		a.atomOp(a.structure.Remove)
		return
	}
	a.run(command.RemoveSelected{})
}

func (a *App) rotateSelected() {
	if a.hasAtomSelection() {
		a.atomOp(func() error {
			return a.structure.RotateResidue(geometry.AxisY, geometry.Radians(command.RotateStepDegrees))
		})
		return
	}
	a.run(command.RotateSelected{})
}

func (a *App) recolorSelected() {
	if a.hasAtomSelection() {
		a.atomOp(a.structure.Recolor)
		return
	}
	a.run(command.RecolorSelected{})
}

func (a *App) transformSelected() {
	if a.hasAtomSelection() {
		a.atomOp(a.structure.Translate)
		return
	}
	a.run(command.ScaleSelected{})
}

func (a *App) typedKey(ev *fyne.KeyEvent) {
	keys := map[fyne.KeyName]interaction.Key{
		fyne.KeyLeft:  interaction.KeyLeft,
		fyne.KeyRight: interaction.KeyRight,
		fyne.KeyUp:    interaction.KeyUp,
		fyne.KeyDown:  interaction.KeyDown,
	}
	switch {
	case ev.Name == fyne.KeyEscape:
		a.run(command.ClearSelection{})
	case ev.Name == fyne.KeyDelete:
		a.removeSelected()
	default:
		if k, ok := keys[ev.Name]; ok && a.controller.Key(k) {
			a.refresh()
		}
	}
}

func (a *App) tapped(id string) {
	if a.structure == nil {
		return
	}
	serial, ok := molecule.SerialForPrimitive(id)
	if !ok {
		return
	}
	a.atomOp(func() error { return a.structure.Toggle(serial) })
}

func (a *App) showAddHelix() {
	def, _ := a.editor.Scene().Catalog().Lookup(scene.KindHelix)
	length := newNumberEntry(def.DefaultLength, command.ParseLength)

	items := []*widget.FormItem{widget.NewFormItem("Length", length)}
	dialog.ShowForm("Add Alpha Helix", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		l, err := command.ParseLength(length.Text)
		if err != nil {
			a.showError(err)
			return
		}
		a.run(command.AddHelix{Length: l})
	}, a.window)
}

func (a *App) showAddSheet() {
	def, _ := a.editor.Scene().Catalog().Lookup(scene.KindSheet)
	length := newNumberEntry(def.DefaultLength, command.ParseLength)
	width := newNumberEntry(def.DefaultWidth, command.ParseWidth)

	items := []*widget.FormItem{
		widget.NewFormItem("Length", length),
		widget.NewFormItem("Width", width),
	}
	dialog.ShowForm("Add Beta Sheet", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		l, err := command.ParseLength(length.Text)
		if err != nil {
			a.showError(err)
			return
		}
		w, err := command.ParseWidth(width.Text)
		if err != nil {
			a.showError(err)
			return
		}
		a.run(command.AddSheet{Length: l, Width: w})
	}, a.window)
}

// newNumberEntry creates an entry prefilled with def that validates with parse
func newNumberEntry(def float64, parse func(string) (float64, error)) *widget.Entry {
	e := widget.NewEntry()
	if def > 0 {
		e.SetText(strconv.FormatFloat(def, 'f', -1, 64))
	}
	e.Validator = func(s string) error {
		_, err := parse(s)
		return err
	}
	return e
}

func (a *App) showSaveFile() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		a.run(command.Export{Sink: export.FileSink{Path: path}})
	}, a.window)
}

func (a *App) showExportStructure() {
	if a.structure == nil {
		a.showError(&command.PreconditionError{Command: "export", Message: "Load a structure first."})
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()

		doc, err := a.structure.JSON()
		if err != nil {
			a.showError(err)
			return
		}
		ack, err := export.FileSink{Path: path}.Deliver(a.ctx, doc)
		if err != nil {
			a.showError(fmt.Errorf("failed to export structure: %w", err))
			return
		}
		dialog.ShowInformation("Export Atoms", ack, a.window)
	}, a.window)
}

func (a *App) showOpenStructure() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		a.loadStructure(path)
	}, a.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".pdb", ".PDB", ".ent"}))
	fileDialog.Show()
}

// loadStructure fetches source in the background and swaps it in on the UI
// thread
func (a *App) loadStructure(source string) {
	a.structureLabel.SetText("Loading " + source + "...")
	results := molecule.LoadAsync(a.ctx, source)
	go func() {
		res := <-results
		fyne.Do(func() {
			if res.Err != nil {
				a.structureLabel.SetText("No structure loaded")
				a.showError(fmt.Errorf("failed to load %s: %w", res.Source, res.Err))
				return
			}
			first := a.structure == nil
			a.structure = molecule.NewView(res.Structure)
			fmt.Printf("Loaded structure %s (%d atoms)\n", res.Source, res.Structure.AtomCount())
			a.refresh()
			if first {
				a.sceneView.FrameAll()
			}
		})
	}()
}

func (a *App) addDemoChain() {
	if a.structure == nil {
		a.structure = molecule.NewView(&pdb.Structure{ID: "demo"})
	}
	a.structure.AddDemoChain()
	a.refresh()
}

func (a *App) setRepresentation(rep molecule.Representation) {
	if a.structure == nil {
		return
	}
	a.structure.SetStyle(molecule.All(), molecule.Style{Rep: rep})
	a.refresh()
}

func (a *App) toggleSpin() {
	if a.structure == nil {
		return
	}
	a.structure.ToggleSpin()
}
