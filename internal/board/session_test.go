package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WormBoard/internal/config"
	"WormBoard/internal/state"
	"WormBoard/internal/tools"
)

func newTestSession(t *testing.T, kind tools.Kind) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Tool = kind.String()
	return New(cfg, WithHistoryOptions(state.WithIDSource(state.SequentialSource("pt"))))
}

func press(s *Session, x, y float64) {
	ev := tools.PointerEvent{Pos: state.Pt(x, y), Buttons: tools.ButtonPrimary}
	s.HandlePointerDown(ev)
	ev.Buttons = 0
	s.HandlePointerUp(ev)
}

func drag(s *Session, from, to state.Point) {
	s.HandlePointerDown(tools.PointerEvent{Pos: from, Buttons: tools.ButtonPrimary})
	s.HandlePointerMove(tools.PointerEvent{Pos: to, Buttons: tools.ButtonPrimary})
	s.HandlePointerUp(tools.PointerEvent{Pos: to})
}

func xs(points []state.OrderedPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.X
	}
	return out
}

func TestPencilStrokeUndoesAsOneUnit(t *testing.T) {
	s := newTestSession(t, tools.Pencil)
	drag(s, state.Pt(0, 0), state.Pt(100, 0))

	assert.Equal(t, []float64{81, 54, 27, 0}, xs(s.OrderedPoints()))

	s.Undo()
	assert.Empty(t, s.OrderedPoints())
	s.Redo()
	assert.Len(t, s.OrderedPoints(), 4)
}

func TestOnChangeFiresForEveryMutation(t *testing.T) {
	s := newTestSession(t, tools.Pencil)
	var calls [][]state.OrderedPoint
	s.OnChange = func(points []state.OrderedPoint) {
		calls = append(calls, points)
	}

	press(s, 5, 5)
	s.Undo()
	s.Undo()
	s.Redo()
	s.ClearAll()

	require.Len(t, calls, 4, "the second undo had nothing to do")
	assert.Len(t, calls[0], 1)
	assert.Empty(t, calls[1])
	assert.Len(t, calls[2], 1)
	assert.Empty(t, calls[3])
}

func TestClearAllThenUndoRestores(t *testing.T) {
	s := newTestSession(t, tools.Pencil)
	s.Load([]state.Point{state.Pt(1, 1), state.Pt(2, 2)})
	press(s, 50, 50)
	before := s.OrderedPoints()

	s.ClearAll()
	assert.Empty(t, s.OrderedPoints())

	s.Undo()
	assert.Equal(t, before, s.OrderedPoints())
}

func TestClearAllOnEmptyBoardIsNoop(t *testing.T) {
	s := newTestSession(t, tools.Pencil)
	s.ClearAll()
	assert.False(t, s.CanUndo())
}

func TestInvalidOperationsAreNoops(t *testing.T) {
	s := newTestSession(t, tools.Line)
	assert.NotPanics(t, func() {
		s.Undo()
		s.Redo()
		s.ClearAll()
		s.Load(nil)
		s.HandleKey(tools.KeyEvent{Key: tools.KeyEscape})
	})
	assert.Empty(t, s.OrderedPoints())
}

func TestWandAnchorFollowsHighestDrawIndexAfterUndo(t *testing.T) {
	s := newTestSession(t, tools.Wand)

	// The seed is leftmost, so after the undo the most recent dot at
	// (300, 0) is not the one drawn last.
	s.Load([]state.Point{state.Pt(0, 500)})
	press(s, 300, 0)
	press(s, 1000, 0)
	assert.Len(t, s.OrderedPoints(), 3)

	s.Undo()
	s.HandlePointerMove(tools.PointerEvent{Pos: state.Pt(0, 1000)})
	cands := s.Candidates()
	require.Len(t, cands, 1)
	assert.InDelta(t, 0, cands[0].X, 1e-9)
	assert.InDelta(t, 527, cands[0].Y, 1e-9, "anchor moved to the point with the highest draw index")
}

func TestSwitchingToolsReleasesSoftLock(t *testing.T) {
	s := newTestSession(t, tools.Wand)
	press(s, 0, 0)
	s.HandlePointerMove(tools.PointerEvent{Pos: state.Pt(1000, 0)})
	assert.Equal(t, []state.Point{state.Pt(27, 0)}, s.Candidates())

	s.SetActiveTool(tools.Pencil)
	s.SetActiveTool(tools.Wand)
	assert.Equal(t, tools.Wand, s.ActiveTool())
	assert.Equal(t, []state.Point{state.Pt(1000, 0)}, s.Candidates())
	assert.Len(t, s.OrderedPoints(), 1, "history untouched")
}

func TestLineSegmentsUndoIndividually(t *testing.T) {
	s := newTestSession(t, tools.Line)
	press(s, 0, 0)
	press(s, 100, 0)
	press(s, 100, 100)
	total := len(s.OrderedPoints())

	s.Undo()
	assert.Less(t, len(s.OrderedPoints()), total)
	assert.Len(t, s.OrderedPoints(), 4)

	s.Undo()
	assert.Empty(t, s.OrderedPoints())
}

func TestLineSnapWithShiftKey(t *testing.T) {
	s := newTestSession(t, tools.Line)
	press(s, 0, 0)

	s.HandleKey(tools.KeyEvent{Key: tools.KeyShift})
	s.HandlePointerMove(tools.PointerEvent{Pos: state.Pt(100, 5), Modifiers: tools.ModShift})
	for _, c := range s.Candidates() {
		assert.Equal(t, 0.0, c.Y)
	}

	s.HandlePointerDown(tools.PointerEvent{Pos: state.Pt(100, 5), Buttons: tools.ButtonPrimary, Modifiers: tools.ModShift})
	for _, p := range s.OrderedPoints() {
		assert.Equal(t, 0.0, p.Y)
	}
}

func TestKeyboardShortcuts(t *testing.T) {
	s := newTestSession(t, tools.Pencil)
	press(s, 1, 1)
	press(s, 2, 2)

	s.HandleKey(tools.KeyEvent{Key: "z", Modifiers: tools.ModCtrl})
	assert.Len(t, s.OrderedPoints(), 1)
	s.HandleKey(tools.KeyEvent{Key: "z", Modifiers: tools.ModCtrl | tools.ModShift})
	assert.Len(t, s.OrderedPoints(), 2)
	s.HandleKey(tools.KeyEvent{Key: "z", Modifiers: tools.ModSuper})
	s.HandleKey(tools.KeyEvent{Key: "y", Modifiers: tools.ModCtrl})
	assert.Len(t, s.OrderedPoints(), 2)

	s.HandleKey(tools.KeyEvent{Key: "l"})
	assert.Equal(t, tools.Line, s.ActiveTool())
	s.HandleKey(tools.KeyEvent{Key: "w"})
	assert.Equal(t, tools.Wand, s.ActiveTool())
	s.HandleKey(tools.KeyEvent{Key: "p", Released: true})
	assert.Equal(t, tools.Wand, s.ActiveTool(), "releases are not shortcuts")
	s.HandleKey(tools.KeyEvent{Key: "p"})
	assert.Equal(t, tools.Pencil, s.ActiveTool())
}

func TestEscapeReleasesWandLock(t *testing.T) {
	s := newTestSession(t, tools.Wand)
	press(s, 0, 0)
	s.HandleKey(tools.KeyEvent{Key: tools.KeyEscape})
	s.HandlePointerMove(tools.PointerEvent{Pos: state.Pt(400, 400)})
	assert.Equal(t, []state.Point{state.Pt(400, 400)}, s.Candidates())
}

func TestNewCommitAfterUndoDropsRedo(t *testing.T) {
	s := newTestSession(t, tools.Pencil)
	press(s, 1, 1)
	press(s, 2, 2)
	s.Undo()
	require.True(t, s.CanRedo())

	press(s, 3, 3)
	assert.False(t, s.CanRedo())
	before := s.OrderedPoints()
	s.Redo()
	assert.Equal(t, before, s.OrderedPoints())
}

func TestOrderedPointsIsACopy(t *testing.T) {
	s := newTestSession(t, tools.Pencil)
	press(s, 1, 1)
	pts := s.OrderedPoints()
	pts[0].X = 500
	assert.Equal(t, 1.0, s.OrderedPoints()[0].X)
}

func TestZeroDotSizeFallsBackToDefault(t *testing.T) {
	s := New(config.Config{Tool: "wand"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.HandlePointerDown(tools.PointerEvent{Pos: state.Pt(0, 0), Buttons: tools.ButtonPrimary})
		s.HandlePointerMove(tools.PointerEvent{Pos: state.Pt(60, 0), Buttons: tools.ButtonPrimary})
		s.HandlePointerUp(tools.PointerEvent{Pos: state.Pt(60, 0)})
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("wand drag did not return with a zero dot size")
	}
	assert.Equal(t, []float64{54, 27, 0}, xs(s.OrderedPoints()))
}
