package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/scene"
)

// ParseScript reads one command per line. Blank lines and lines starting
// with "//" or ";" are skipped.
//
//	add-helix 5
//	add-sheet 5 2
//	select e1 e2
//	connect
//	export scene.json
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") || strings.HasPrefix(text, ";") {
			continue
		}
		cmd, err := ParseLine(text)
		if err != nil {
			return nil, &ScriptError{Line: line, Err: err}
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}

// ParseLine turns a single script line into a command
func ParseLine(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, errors.New(msgMissingArgs)
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "add-helix":
		if err := arity(args, 0, 1); err != nil {
			return nil, err
		}
		cmd := AddHelix{}
		if len(args) == 1 {
			length, err := ParseLength(args[0])
			if err != nil {
				return nil, err
			}
			cmd.Length = length
		}
		return cmd, nil
	case "add-sheet":
		if err := arity(args, 0, 2); err != nil {
			return nil, err
		}
		cmd := AddSheet{}
		if len(args) >= 1 {
			length, err := ParseLength(args[0])
			if err != nil {
				return nil, err
			}
			cmd.Length = length
		}
		if len(args) == 2 {
			width, err := ParseWidth(args[1])
			if err != nil {
				return nil, err
			}
			cmd.Width = width
		}
		return cmd, nil
	case "select":
		ids := make([]scene.ElementID, len(args))
		for i, a := range args {
			ids[i] = scene.ElementID(a)
		}
		return Select{IDs: ids}, nil
	case "toggle":
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		return Toggle{ID: scene.ElementID(args[0])}, nil
	case "recolor":
		if err := arity(args, 0, 1); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return RecolorSelected{}, nil
		}
		c, err := scene.ParseColor(args[0])
		if err != nil {
			return nil, &InputError{Field: "Color", Input: args[0], Reason: "must be a hex colour"}
		}
		return RecolorSelected{Color: &c}, nil
	case "export":
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		return Export{Sink: SinkFor(args[0])}, nil
	case "remove", "rotate", "scale", "connect", "clear":
		if err := arity(args, 0, 0); err != nil {
			return nil, err
		}
		return simple[name], nil
	default:
		return nil, fmt.Errorf("%s: %s", msgUnknownCommand, name)
	}
}

var simple = map[string]Command{
	"remove":  RemoveSelected{},
	"rotate":  RotateSelected{},
	"scale":   ScaleSelected{},
	"connect": ConnectSelected{},
	"clear":   ClearSelection{},
}

// SinkFor returns an HTTP sink for http(s) targets and a file sink otherwise
func SinkFor(target string) export.Sink {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return export.NewHTTPSink(target)
	}
	return export.FileSink{Path: target}
}

func arity(args []string, minArgs, maxArgs int) error {
	switch {
	case len(args) < minArgs:
		return errors.New(msgMissingArgs)
	case len(args) > maxArgs:
		return errors.New(msgTooManyArgs)
	}
	return nil
}
