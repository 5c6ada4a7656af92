// Package tools turns raw pointer motion into evenly spaced anchor points.
//
// Each tool is a small state machine. Tools never touch history directly;
// they hand finished points to a Canvas.
package tools

import (
	"fmt"
	"strings"

	"WormBoard/internal/state"
)

// Canvas receives the points a tool commits. merge asks for the points to
// join the previous add batch so they undo together.
type Canvas interface {
	Commit(points []state.Point, merge bool)
}

type Kind int

const (
	Pencil Kind = iota
	Wand
	Line
)

var kindNames = map[Kind]string{
	Pencil: "pencil",
	Wand:   "wand",
	Line:   "line",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names returned by Kind.String, case-insensitively.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Tool is the state machine behind one drawing tool.
type Tool interface {
	Kind() Kind

	PointerDown(c Canvas, ev PointerEvent)
	PointerMove(c Canvas, ev PointerEvent)
	PointerUp(c Canvas, ev PointerEvent)
	Key(c Canvas, ev KeyEvent)

	// Candidates previews what a click at pointer would place.
	Candidates(pointer state.Point, mods Modifiers) []state.Point

	// Reset drops in-progress state such as a soft lock.
	Reset()

	// Resync moves a held soft lock onto last after history changed under
	// the tool. ok is false when the canvas is empty.
	Resync(last state.Point, ok bool)
}

// New returns a fresh tool of the given kind.
func New(kind Kind, spacing float64) Tool {
	switch kind {
	case Wand:
		return &WandTool{spacing: spacing}
	case Line:
		return &LineTool{spacing: spacing}
	default:
		return &PencilTool{spacing: spacing}
	}
}
