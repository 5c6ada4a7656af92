package tools

import "WormBoard/internal/state"

// LineTool draws chained straight runs of dots. The first click places a
// dot; each further click fills the segment from the previous endpoint to
// the pointer. Holding Shift snaps the segment to an axis or diagonal.
type LineTool struct {
	spacing float64
	// toPlot holds the endpoint the next segment starts from.
	toPlot []state.Point
	// firstSegment is set until the first segment of a line is placed; that
	// segment joins the batch of the starting dot.
	firstSegment bool
}

func (t *LineTool) Kind() Kind { return Line }

// Pending returns the endpoint the next segment starts from, if a line is
// in progress.
func (t *LineTool) Pending() (state.Point, bool) {
	if len(t.toPlot) == 0 {
		return state.Point{}, false
	}
	return t.toPlot[len(t.toPlot)-1], true
}

func (t *LineTool) run(from, to state.Point, mods Modifiers) []state.Point {
	dir := Straight
	if mods&ModShift != 0 {
		dir = SnapDirection(from, to)
	}
	return Interpolate(from, to, dir, t.spacing)
}

func (t *LineTool) PointerDown(c Canvas, ev PointerEvent) {
	if !ev.primary() {
		return
	}
	from, ok := t.Pending()
	if !ok {
		c.Commit([]state.Point{ev.Pos}, false)
		t.toPlot = []state.Point{ev.Pos}
		t.firstSegment = true
		return
	}

	run := t.run(from, ev.Pos, ev.Modifiers)
	if len(run) < 2 {
		return
	}
	// Later segments start batches of their own so each undoes on its own.
	c.Commit(run[1:], t.firstSegment)
	t.firstSegment = false
	t.toPlot = []state.Point{run[len(run)-1]}
}

func (t *LineTool) PointerMove(Canvas, PointerEvent) {}

func (t *LineTool) PointerUp(Canvas, PointerEvent) {}

func (t *LineTool) Key(_ Canvas, ev KeyEvent) {
	if ev.releasesLock() {
		t.Reset()
	}
}

func (t *LineTool) Candidates(pointer state.Point, mods Modifiers) []state.Point {
	from, ok := t.Pending()
	if !ok {
		return []state.Point{pointer}
	}
	return t.run(from, pointer, mods)[1:]
}

func (t *LineTool) Reset() {
	t.toPlot = nil
	t.firstSegment = false
}

func (t *LineTool) Resync(last state.Point, ok bool) {
	if len(t.toPlot) == 0 {
		return
	}
	if !ok {
		t.Reset()
		return
	}
	t.toPlot = []state.Point{last}
	t.firstSegment = false
}
