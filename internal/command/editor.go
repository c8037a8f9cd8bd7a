package command

import (
	"context"
	"fmt"

	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/internal/selection"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// RotateStepDegrees is the rotation applied by RotateSelected
const RotateStepDegrees = 45

// Result describes what a dispatched command did
type Result struct {
	Message    string
	Counts     scene.Counts
	Element    scene.ElementID    // set by the add commands
	Connection scene.ConnectionID // set by ConnectSelected
}

// Editor applies commands to a scene and its selection
type Editor struct {
	scene     *scene.Scene
	selection *selection.Selection
}

// NewEditor creates an editor over the given scene and selection
func NewEditor(sc *scene.Scene, sel *selection.Selection) *Editor {
	return &Editor{scene: sc, selection: sel}
}

// Scene returns the edited scene
func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

// Selection returns the edited selection
func (e *Editor) Selection() *selection.Selection {
	return e.selection
}

// Dispatch validates and applies cmd. Precondition violations are returned
// as *PreconditionError and leave all state untouched.
func (e *Editor) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	var (
		res Result
		err error
	)
	switch c := cmd.(type) {
	case AddHelix:
		res, err = e.add(scene.KindHelix, scene.Params{Length: c.Length})
	case AddSheet:
		res, err = e.add(scene.KindSheet, scene.Params{Length: c.Length, Width: c.Width})
	case RemoveSelected:
		res, err = e.remove(c)
	case RotateSelected:
		res, err = e.rotate(c)
	case RecolorSelected:
		res, err = e.recolor(c)
	case ScaleSelected:
		res, err = e.scale(c)
	case ConnectSelected:
		res, err = e.connect(c)
	case Select:
		res, err = e.selectExactly(c)
	case Toggle:
		res, err = e.toggle(c)
	case ClearSelection:
		e.selection.Clear()
		res.Message = "Selection cleared"
	case Export:
		res, err = e.export(ctx, c)
	case nil:
		err = fmt.Errorf("%s: nil command", msgUnknownCommand)
	default:
		err = fmt.Errorf("%s: %s", msgUnknownCommand, cmd.Name())
	}
	res.Counts = e.scene.Counts()
	return res, err
}

func (e *Editor) add(kind scene.Kind, params scene.Params) (Result, error) {
	el, err := e.scene.Add(kind, params)
	if err != nil {
		return Result{}, fmt.Errorf("failed to add %s: %w", kind, err)
	}
	return Result{
		Message: fmt.Sprintf("Added %s %s", kind, el.ID),
		Element: el.ID,
	}, nil
}

// requireSelection returns the selected ids or a precondition error
func (e *Editor) requireSelection(cmd Command) ([]scene.ElementID, error) {
	ids := e.selection.IDs()
	if len(ids) == 0 {
		return nil, &PreconditionError{Command: cmd.Name(), Message: msgSelectFirst}
	}
	return ids, nil
}

func (e *Editor) remove(cmd RemoveSelected) (Result, error) {
	ids, err := e.requireSelection(cmd)
	if err != nil {
		return Result{}, err
	}
	removed, err := e.scene.Remove(ids...)
	e.selection.Clear()
	if err != nil {
		return Result{}, fmt.Errorf("failed to remove selection: %w", err)
	}
	return Result{Message: fmt.Sprintf("Removed %d element(s)", removed)}, nil
}

func (e *Editor) rotate(cmd RotateSelected) (Result, error) {
	ids, err := e.requireSelection(cmd)
	if err != nil {
		return Result{}, err
	}
	delta := geometry.Around(geometry.AxisZ, geometry.Radians(RotateStepDegrees))
	if err := e.mutateAll(ids, func(scene.ElementID) scene.Mutation {
		return scene.Mutation{Rotate: &delta}
	}); err != nil {
		return Result{}, fmt.Errorf("failed to rotate selection: %w", err)
	}
	return Result{Message: fmt.Sprintf("Rotated %d element(s)", len(ids))}, nil
}

func (e *Editor) recolor(cmd RecolorSelected) (Result, error) {
	ids, err := e.requireSelection(cmd)
	if err != nil {
		return Result{}, err
	}
	if err := e.mutateAll(ids, func(scene.ElementID) scene.Mutation {
		c := scene.RandomColor(e.scene.Rand())
		if cmd.Color != nil {
			c = *cmd.Color
		}
		return scene.Mutation{SetColor: &c}
	}); err != nil {
		return Result{}, fmt.Errorf("failed to recolor selection: %w", err)
	}
	return Result{Message: fmt.Sprintf("Recolored %d element(s)", len(ids))}, nil
}

func (e *Editor) scale(cmd ScaleSelected) (Result, error) {
	ids, err := e.requireSelection(cmd)
	if err != nil {
		return Result{}, err
	}
	if err := e.mutateAll(ids, func(scene.ElementID) scene.Mutation {
		f := 1 + e.scene.Rand().Float64()
		s := geometry.NewVector3(f, f, f)
		return scene.Mutation{SetScale: &s}
	}); err != nil {
		return Result{}, fmt.Errorf("failed to scale selection: %w", err)
	}
	return Result{Message: fmt.Sprintf("Scaled %d element(s)", len(ids))}, nil
}

// mutateAll applies mutation to every id, or to none when any id is unknown
func (e *Editor) mutateAll(ids []scene.ElementID, mutation func(scene.ElementID) scene.Mutation) error {
	for _, id := range ids {
		if !e.scene.Has(id) {
			return fmt.Errorf("%w: %s", scene.ErrUnknownElement, id)
		}
	}
	for _, id := range ids {
		if err := e.scene.Mutate(id, mutation(id)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) connect(cmd ConnectSelected) (Result, error) {
	ids := e.selection.IDs()
	if len(ids) != 2 {
		return Result{}, &PreconditionError{Command: cmd.Name(), Message: msgSelectTwo}
	}
	conn, err := e.scene.Connect(ids[0], ids[1])
	if err != nil {
		return Result{}, fmt.Errorf("failed to connect %s and %s: %w", ids[0], ids[1], err)
	}
	e.selection.Clear()
	return Result{
		Message:    fmt.Sprintf("Connected %s and %s", conn.A, conn.B),
		Connection: conn.ID,
	}, nil
}

func (e *Editor) selectExactly(cmd Select) (Result, error) {
	for _, id := range cmd.IDs {
		if !e.scene.Has(id) {
			return Result{}, fmt.Errorf("failed to select: %w: %s", scene.ErrUnknownElement, id)
		}
	}
	e.selection.SetExactly(cmd.IDs...)
	return Result{Message: fmt.Sprintf("Selected %d element(s)", e.selection.Len())}, nil
}

func (e *Editor) toggle(cmd Toggle) (Result, error) {
	if !e.scene.Has(cmd.ID) {
		return Result{}, fmt.Errorf("failed to toggle: %w: %s", scene.ErrUnknownElement, cmd.ID)
	}
	e.selection.Toggle(cmd.ID)
	state := "Deselected"
	if e.selection.Contains(cmd.ID) {
		state = "Selected"
	}
	return Result{Message: fmt.Sprintf("%s %s", state, cmd.ID)}, nil
}

func (e *Editor) export(ctx context.Context, cmd Export) (Result, error) {
	if cmd.Sink == nil {
		return Result{}, fmt.Errorf("failed to export: no destination")
	}
	doc, err := export.Serialize(e.scene.Elements())
	if err != nil {
		return Result{}, err
	}
	ack, err := cmd.Sink.Deliver(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("failed to export: %w", err)
	}
	return Result{Message: ack}, nil
}
