package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(opts ...Option) *History {
	return NewHistory(append([]Option{WithIDSource(SequentialSource("p"))}, opts...)...)
}

func positions(points []OrderedPoint) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Point
	}
	return out
}

func TestCommitAssignsIDsAndOrder(t *testing.T) {
	h := newTestHistory()
	live := h.Commit([]Point{Pt(10, 5), Pt(30, 1), Pt(10, 2)}, false)

	require.Len(t, live, 3)
	assert.Equal(t, []Point{Pt(30, 1), Pt(10, 2), Pt(10, 5)}, positions(live))
	for i, p := range live {
		assert.Equal(t, i, p.DrawIndex)
		assert.NotEmpty(t, p.ID)
	}
	assert.Equal(t, 1, h.Len())
}

func TestCommitEmptyIsNoop(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(1, 1)}, false)
	h.Undo()

	h.Commit(nil, false)
	assert.True(t, h.CanRedo(), "an empty commit must not clear redo")
	assert.Equal(t, 0, h.Len())
}

func TestCommitMerge(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(0, 0)}, false)
	h.Commit([]Point{Pt(27, 0)}, true)
	h.Commit([]Point{Pt(54, 0)}, true)

	assert.Equal(t, 1, h.Len())
	assert.Len(t, h.Points(), 3)

	h.Undo()
	assert.Empty(t, h.Points(), "a merged stroke undoes as one unit")
}

func TestCommitMergeAfterRemoveStartsNewBatch(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(0, 0)}, false)
	h.Clear()
	h.Commit([]Point{Pt(5, 5)}, true)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []Point{Pt(5, 5)}, positions(h.Points()))
}

func TestUndoRestoresPreviousSetExactly(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(3, 3), Pt(1, 1)}, false)
	before := h.Points()

	h.Commit([]Point{Pt(2, 9), Pt(8, 0)}, false)
	assert.NotEqual(t, before, h.Points())

	assert.Equal(t, before, h.Undo())
}

func TestUndoRedoIsIdentity(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(3, 3)}, false)
	h.Commit([]Point{Pt(4, 7), Pt(9, 2)}, false)
	h.Clear()
	h.Commit([]Point{Pt(1, 1)}, false)

	for i := 0; i < 4; i++ {
		before := h.Points()
		h.Undo()
		assert.Equal(t, before, h.Redo())
		h.Undo()
	}
	assert.Empty(t, h.Points())
}

func TestUndoRedoOnEmptyAreNoops(t *testing.T) {
	h := newTestHistory()
	assert.Empty(t, h.Undo())
	assert.Empty(t, h.Redo())

	h.Commit([]Point{Pt(1, 2)}, false)
	live := h.Redo()
	assert.Len(t, live, 1)
}

func TestNewCommitDiscardsRedo(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(1, 1)}, false)
	h.Commit([]Point{Pt(2, 2)}, false)
	h.Undo()
	h.Undo()
	require.True(t, h.CanRedo())

	h.Commit([]Point{Pt(3, 3)}, false)
	assert.False(t, h.CanRedo())

	before := h.Points()
	assert.Equal(t, before, h.Redo())
}

func TestMergedCommitDiscardsRedo(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(1, 1)}, false)
	h.Commit([]Point{Pt(2, 2)}, false)
	h.Undo()

	h.Commit([]Point{Pt(3, 3)}, true)
	assert.False(t, h.CanRedo())
	assert.Equal(t, 1, h.Len())
}

func TestHistoryLimitEvictsOldest(t *testing.T) {
	h := newTestHistory()
	for i := 0; i < DefaultLimit+1; i++ {
		h.Commit([]Point{Pt(float64(i), 0)}, false)
	}

	assert.Equal(t, DefaultLimit, h.Len())
	live := h.Points()
	assert.Len(t, live, DefaultLimit)
	for _, p := range live {
		assert.NotEqual(t, 0.0, p.X, "the evicted batch's point is gone")
	}

	for h.CanUndo() {
		h.Undo()
	}
	assert.Empty(t, h.Points(), "the evicted batch cannot be undone back")
}

func TestWithLimit(t *testing.T) {
	h := newTestHistory(WithLimit(2))
	for i := 0; i < 5; i++ {
		h.Commit([]Point{Pt(float64(i), 0)}, false)
	}
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []Point{Pt(4, 0), Pt(3, 0)}, positions(h.Points()))
}

func TestClearAndUndo(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(1, 1), Pt(2, 2)}, false)
	h.Commit([]Point{Pt(5, 0)}, false)
	before := h.Points()

	assert.Empty(t, h.Clear())
	applied := h.Applied()
	top := applied[len(applied)-1]
	assert.Equal(t, BatchRemove, top.Kind)
	assert.Len(t, top.Points, 3)

	assert.Equal(t, before, h.Undo())
}

func TestClearEmptyIsNoop(t *testing.T) {
	h := newTestHistory()
	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestRemoveSkipsPointsNotLive(t *testing.T) {
	h := newTestHistory()
	live := h.Commit([]Point{Pt(1, 1), Pt(2, 2)}, false)

	h.Remove([]IdentifiedPoint{{ID: "missing", Point: Pt(1, 1)}})
	assert.Equal(t, 1, h.Len())

	h.Remove([]IdentifiedPoint{live[0].IdentifiedPoint, live[0].IdentifiedPoint, {ID: "missing"}})
	applied := h.Applied()
	require.Len(t, applied, 2)
	assert.Len(t, applied[1].Points, 1)
	assert.Equal(t, []Point{Pt(1, 1)}, positions(h.Points()))
}

func TestRemoveIsByIdentityNotPosition(t *testing.T) {
	h := newTestHistory()
	live := h.Commit([]Point{Pt(4, 4), Pt(4, 4)}, false)
	require.Len(t, live, 2)

	after := h.Remove([]IdentifiedPoint{live[1].IdentifiedPoint})
	require.Len(t, after, 1)
	assert.Equal(t, live[0].ID, after[0].ID)
}

func TestLastIsHighestDrawIndex(t *testing.T) {
	h := newTestHistory()
	_, ok := h.Last()
	assert.False(t, ok)

	h.Commit([]Point{Pt(0, 0)}, false)
	h.Commit([]Point{Pt(100, 0)}, false)

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, Pt(0, 0), last.Point, "leftmost point is drawn last, regardless of insertion")
	assert.Equal(t, 1, last.DrawIndex)
}

func TestPointsIsACopy(t *testing.T) {
	h := newTestHistory()
	h.Commit([]Point{Pt(1, 1)}, false)
	live := h.Points()
	live[0].X = 99
	assert.Equal(t, 1.0, h.Points()[0].X)
}

func TestHistoryMatchesFoldFromScratch(t *testing.T) {
	h := newTestHistory(WithLimit(6))
	for i := 0; i < 20; i++ {
		switch i % 5 {
		case 0, 1, 2:
			h.Commit([]Point{Pt(float64(i*7%13), float64(i%4)), Pt(float64(i), 3)}, i%2 == 0)
		case 3:
			live := h.Points()
			if len(live) > 0 {
				h.Remove([]IdentifiedPoint{live[0].IdentifiedPoint})
			}
		case 4:
			h.Undo()
		}
		assert.Equal(t, Derive(h.Applied()), h.Points(), fmt.Sprintf("step %d", i))
	}
}
