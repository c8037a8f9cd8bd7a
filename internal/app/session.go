package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/philipparndt/protedit/internal/command"
	"github.com/philipparndt/protedit/internal/config"
	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/interaction"
	"github.com/philipparndt/protedit/internal/molecule"
	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/internal/selection"
	"github.com/philipparndt/protedit/pkg/analysis"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/philipparndt/protedit/pkg/pdb"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// Status is the last message shown in the status bar
type Status struct {
	Text string
	Err  bool
	At   time.Time
}

// Field is one entry of a prompt
type Field struct {
	Label string
	Value string
}

// Prompt collects numeric input before a command runs
type Prompt struct {
	Title  string
	Fields []Field
	Active int

	submit func(values []string) (command.Command, error)
}

// Session holds everything the editor window edits, without any window.
// Input handlers translate key and mouse events into Session calls.
type Session struct {
	cfg        config.Config
	editor     *command.Editor
	controller *interaction.Controller

	scenePresenter *render.Presenter
	molPresenter   *molecule.Presenter
	view           *molecule.View

	status Status
	prompt *Prompt
	now    func() time.Time
}

// NewSession creates an empty scene drawn into backend
func NewSession(cfg config.Config, backend render.Backend) (*Session, error) {
	opts, err := cfg.SceneOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to configure scene: %w", err)
	}
	sc := scene.New(opts...)
	sel := selection.New(cfg.Highlight())

	ctrl := interaction.NewController(sc, sel)
	ctrl.SetRotateStep(cfg.Editor.RotateStepDeg)

	return &Session{
		cfg:            cfg,
		editor:         command.NewEditor(sc, sel),
		controller:     ctrl,
		scenePresenter: render.NewPresenter(backend),
		molPresenter:   molecule.NewPresenter(backend),
		now:            time.Now,
	}, nil
}

// Scene returns the edited scene
func (s *Session) Scene() *scene.Scene {
	return s.editor.Scene()
}

// Selection returns the element selection
func (s *Session) Selection() *selection.Selection {
	return s.editor.Selection()
}

// Controller returns the gesture controller
func (s *Session) Controller() *interaction.Controller {
	return s.controller
}

// View returns the loaded structure view, or nil
func (s *Session) View() *molecule.View {
	return s.view
}

// Sync pushes the scene and the structure into the backend
func (s *Session) Sync() {
	s.scenePresenter.Sync(s.Scene(), s.Selection())
	if s.view != nil {
		s.molPresenter.Sync(s.view)
	}
}

// Info is the info panel line
func (s *Session) Info() string {
	return s.Scene().Counts().String()
}

// StructureInfo describes the loaded structure, or returns "" when none is
// loaded. Two or three selected atoms add their distance or angle.
func (s *Session) StructureInfo() string {
	if s.view == nil {
		return ""
	}
	st := s.view.Structure()
	name := st.ID
	if name == "" {
		name = "structure"
	}
	selected := s.view.Selected()
	info := fmt.Sprintf("%s: %d atoms, %d selected", name, st.AtomCount(), len(selected))
	if n := len(selected); n == 2 || n == 3 {
		if m, err := analysis.MeasureAtoms(st, selected...); err == nil {
			info += ", " + m
		}
	}
	return info
}

// Status returns the current status message. Expired messages are empty.
func (s *Session) Status() Status {
	if s.status.Text == "" || s.now().Sub(s.status.At) > statusTimeout {
		return Status{}
	}
	return s.status
}

func (s *Session) inform(format string, args ...any) {
	s.status = Status{Text: fmt.Sprintf(format, args...), At: s.now()}
	fmt.Println(s.status.Text)
}

// Report shows err in the status bar
func (s *Session) Report(err error) {
	if err == nil {
		return
	}
	s.status = Status{Text: err.Error(), Err: true, At: s.now()}

	var pre *command.PreconditionError
	if !errors.As(err, &pre) {
		fmt.Printf("Error: %v\n", err)
	}
}

// Run dispatches cmd and reports the outcome
func (s *Session) Run(ctx context.Context, cmd command.Command) error {
	res, err := s.editor.Dispatch(ctx, cmd)
	if err != nil {
		s.Report(err)
		return err
	}
	if res.Message != "" {
		s.inform("%s", res.Message)
	}
	return nil
}

// Save exports the scene to the configured save URL
func (s *Session) Save(ctx context.Context) error {
	return s.Run(ctx, command.Export{Sink: export.NewHTTPSink(s.cfg.Editor.SaveURL)})
}

// SaveFile exports the scene to path
func (s *Session) SaveFile(ctx context.Context, path string) error {
	return s.Run(ctx, command.Export{Sink: export.FileSink{Path: path}})
}

// Prompt returns the open prompt, or nil
func (s *Session) Prompt() *Prompt {
	return s.prompt
}

// AskHelix opens the length prompt for a new helix
func (s *Session) AskHelix() {
	def, _ := s.Scene().Catalog().Lookup(scene.KindHelix)
	s.prompt = &Prompt{
		Title:  "Add alpha helix",
		Fields: []Field{{Label: "Length", Value: formatDefault(def.DefaultLength)}},
		submit: func(values []string) (command.Command, error) {
			length, err := command.ParseLength(values[0])
			if err != nil {
				return nil, err
			}
			return command.AddHelix{Length: length}, nil
		},
	}
}

// AskSheet opens the length and width prompt for a new sheet
func (s *Session) AskSheet() {
	def, _ := s.Scene().Catalog().Lookup(scene.KindSheet)
	s.prompt = &Prompt{
		Title: "Add beta sheet",
		Fields: []Field{
			{Label: "Length", Value: formatDefault(def.DefaultLength)},
			{Label: "Width", Value: formatDefault(def.DefaultWidth)},
		},
		submit: func(values []string) (command.Command, error) {
			length, err := command.ParseLength(values[0])
			if err != nil {
				return nil, err
			}
			width, err := command.ParseWidth(values[1])
			if err != nil {
				return nil, err
			}
			return command.AddSheet{Length: length, Width: width}, nil
		},
	}
}

func formatDefault(v float64) string {
	if v <= 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}

// TypeRune appends r to the active prompt field
func (s *Session) TypeRune(r rune) {
	if s.prompt == nil {
		return
	}
	f := &s.prompt.Fields[s.prompt.Active]
	f.Value += string(r)
}

// Backspace deletes the last character of the active prompt field
func (s *Session) Backspace() {
	if s.prompt == nil {
		return
	}
	f := &s.prompt.Fields[s.prompt.Active]
	if n := len(f.Value); n > 0 {
		f.Value = f.Value[:n-1]
	}
}

// NextField moves to the next prompt field, wrapping around
func (s *Session) NextField() {
	if s.prompt == nil {
		return
	}
	s.prompt.Active = (s.prompt.Active + 1) % len(s.prompt.Fields)
}

// CancelPrompt closes the prompt without running anything
func (s *Session) CancelPrompt() {
	s.prompt = nil
}

// SubmitPrompt parses the prompt and runs its command. On invalid input the
// prompt stays open and nothing is created.
func (s *Session) SubmitPrompt(ctx context.Context) error {
	if s.prompt == nil {
		return nil
	}
	values := make([]string, len(s.prompt.Fields))
	for i, f := range s.prompt.Fields {
		values[i] = f.Value
	}
	cmd, err := s.prompt.submit(values)
	if err != nil {
		s.Report(err)
		return err
	}
	s.prompt = nil
	return s.Run(ctx, cmd)
}

// SetStructure replaces the loaded structure
func (s *Session) SetStructure(st *pdb.Structure, source string) {
	s.view = molecule.NewView(st)
	s.inform("Loaded structure %s (%d atoms)", source, st.AtomCount())
}

// Click handles a single click on a primitive. Atoms and cartoon segments
// toggle their atom; elements are handled by the drag controller.
func (s *Session) Click(id string) bool {
	if s.view == nil {
		return false
	}
	serial, ok := molecule.SerialForPrimitive(id)
	if !ok {
		return false
	}
	if err := s.view.Toggle(serial); err != nil {
		s.Report(err)
		return false
	}
	return true
}

// SelectedPositions returns the positions of the selected atoms in
// selection order
func (s *Session) SelectedPositions() []geometry.Vector3 {
	if s.view == nil {
		return nil
	}
	atoms := s.view.Structure().Atoms
	var out []geometry.Vector3
	for _, serial := range s.view.Selected() {
		if i, ok := s.view.Index(serial); ok {
			out = append(out, atoms[i].Position)
		}
	}
	return out
}

// hasStructureSelection reports whether atom operations should take the
// command instead of the element editor
func (s *Session) hasStructureSelection() bool {
	return s.view != nil && len(s.view.Selected()) > 0
}

// Remove deletes selected elements, or hides selected atoms
func (s *Session) Remove(ctx context.Context) error {
	if s.hasStructureSelection() {
		return s.atomOp(s.view.Remove, "Atoms removed")
	}
	return s.Run(ctx, command.RemoveSelected{})
}

// Recolor recolours selected elements, or paints selected atoms red
func (s *Session) Recolor(ctx context.Context) error {
	if s.hasStructureSelection() {
		return s.atomOp(s.view.Recolor, "Atoms recoloured")
	}
	return s.Run(ctx, command.RecolorSelected{})
}

// Transform scales selected elements, or shifts selected atoms
func (s *Session) Transform(ctx context.Context) error {
	if s.hasStructureSelection() {
		return s.atomOp(s.view.Translate, "Atoms moved")
	}
	return s.Run(ctx, command.ScaleSelected{})
}

// Rotate turns selected elements, or rotates the selected atom's residue
func (s *Session) Rotate(ctx context.Context) error {
	if s.hasStructureSelection() {
		return s.atomOp(func() error {
			return s.view.RotateResidue(geometry.AxisY, geometry.Radians(command.RotateStepDegrees))
		}, "Residue rotated")
	}
	return s.Run(ctx, command.RotateSelected{})
}

func (s *Session) atomOp(op func() error, done string) error {
	if err := op(); err != nil {
		s.Report(err)
		return err
	}
	s.inform("%s", done)
	return nil
}

// ToggleSpin starts or stops the structure spin
func (s *Session) ToggleSpin() {
	if s.view == nil {
		return
	}
	if s.view.ToggleSpin() {
		s.inform("Spin on")
	} else {
		s.inform("Spin off")
	}
}

// Spinning reports whether the view should rotate continuously
func (s *Session) Spinning() bool {
	return s.view != nil && s.view.Spinning()
}

// SetRepresentation draws every atom of the structure with rep
func (s *Session) SetRepresentation(rep molecule.Representation) {
	if s.view == nil {
		return
	}
	s.view.SetStyle(molecule.All(), molecule.Style{Rep: rep})
	s.inform("Representation: %s", rep)
}

// AddDemoChain adds the five-carbon demo chain, creating an empty structure
// first if none is loaded
func (s *Session) AddDemoChain() {
	if s.view == nil {
		s.view = molecule.NewView(&pdb.Structure{ID: "demo"})
	}
	serials := s.view.AddDemoChain()
	s.inform("Added demo chain (%d atoms)", len(serials))
}

// ExportStructure delivers the visible atoms to sink
func (s *Session) ExportStructure(ctx context.Context, sink export.Sink) error {
	if s.view == nil {
		err := &command.PreconditionError{Command: "export", Message: "Load a structure first."}
		s.Report(err)
		return err
	}
	doc, err := s.view.JSON()
	if err != nil {
		s.Report(err)
		return err
	}
	ack, err := sink.Deliver(ctx, doc)
	if err != nil {
		s.Report(fmt.Errorf("failed to export structure: %w", err))
		return err
	}
	s.inform("%s", ack)
	return nil
}
