package tools

import "WormBoard/internal/state"

// PencilTool draws free-hand. A press places a dot; dragging fills the path
// with dots one spacing apart, all in the batch the press started.
type PencilTool struct {
	spacing     float64
	lastDragged state.Point
	dragging    bool
}

func (t *PencilTool) Kind() Kind { return Pencil }

func (t *PencilTool) PointerDown(c Canvas, ev PointerEvent) {
	if !ev.primary() {
		return
	}
	c.Commit([]state.Point{ev.Pos}, false)
	t.lastDragged = ev.Pos
	t.dragging = true
}

func (t *PencilTool) PointerMove(c Canvas, ev PointerEvent) {
	if !t.dragging {
		return
	}
	if !ev.primary() {
		// release happened outside the canvas
		t.dragging = false
		return
	}
	if t.lastDragged.DistanceTo(ev.Pos) <= t.spacing {
		return
	}

	run := Interpolate(t.lastDragged, ev.Pos, Straight, t.spacing)
	c.Commit(run[1:], true)
	t.lastDragged = run[len(run)-1]
}

func (t *PencilTool) PointerUp(Canvas, PointerEvent) {
	t.dragging = false
}

func (t *PencilTool) Key(Canvas, KeyEvent) {}

func (t *PencilTool) Candidates(pointer state.Point, _ Modifiers) []state.Point {
	return []state.Point{pointer}
}

func (t *PencilTool) Reset() {
	t.dragging = false
}

func (t *PencilTool) Resync(last state.Point, ok bool) {
	if !t.dragging {
		return
	}
	if !ok {
		t.dragging = false
		return
	}
	t.lastDragged = last
}
