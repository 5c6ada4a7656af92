package tools

import "WormBoard/internal/state"

// WandTool places dots exactly one spacing apart however the pointer moves.
// After the first dot the tool locks onto it, and each next candidate sits
// one spacing from the lock in the direction of the pointer.
type WandTool struct {
	spacing float64
	anchor  state.Point
	locked  bool
	held    bool
}

func (t *WandTool) Kind() Kind { return Wand }

// Anchor returns the locked dot, if any.
func (t *WandTool) Anchor() (state.Point, bool) {
	return t.anchor, t.locked
}

func (t *WandTool) candidate(pointer state.Point) state.Point {
	if !t.locked {
		return pointer
	}
	return Project(t.anchor, Bearing(t.anchor, pointer), t.spacing)
}

func (t *WandTool) PointerDown(c Canvas, ev PointerEvent) {
	if !ev.primary() {
		return
	}
	p := t.candidate(ev.Pos)
	c.Commit([]state.Point{p}, false)
	t.anchor, t.locked = p, true
	t.held = true
}

func (t *WandTool) PointerMove(c Canvas, ev PointerEvent) {
	if !t.held {
		return
	}
	if !ev.primary() {
		t.held = false
		return
	}

	if t.spacing <= 0 {
		return
	}

	var run []state.Point
	for t.anchor.DistanceTo(ev.Pos) >= t.spacing {
		p := t.candidate(ev.Pos)
		run = append(run, p)
		t.anchor, t.locked = p, true
	}
	if len(run) > 0 {
		c.Commit(run, true)
	}
}

func (t *WandTool) PointerUp(Canvas, PointerEvent) {
	t.held = false
}

func (t *WandTool) Key(_ Canvas, ev KeyEvent) {
	if ev.releasesLock() {
		t.locked = false
	}
}

func (t *WandTool) Candidates(pointer state.Point, _ Modifiers) []state.Point {
	return []state.Point{t.candidate(pointer)}
}

func (t *WandTool) Reset() {
	t.locked = false
	t.held = false
}

func (t *WandTool) Resync(last state.Point, ok bool) {
	if !t.locked {
		return
	}
	if !ok {
		t.locked = false
		t.held = false
		return
	}
	t.anchor = last
}
