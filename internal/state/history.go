package state

import (
	"log/slog"
	"slices"

	"WormBoard/internal/logging"
)

// DefaultLimit is the number of applied batches kept before the oldest is
// evicted.
const DefaultLimit = 25

// History records batches of added and removed points and derives the live
// point set from them. The live set is rebuilt from the applied batches after
// every mutation, so callers always get a fresh slice.
//
// A History is not safe for concurrent use.
type History struct {
	applied []Batch
	undone  []Batch
	live    []OrderedPoint

	limit int
	ids   IDSource
	log   *slog.Logger
}

// Option configures a History.
type Option func(*History)

// WithLimit bounds the applied batches. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.limit = n
		}
	}
}

// WithIDSource replaces the UUID identifiers.
func WithIDSource(src IDSource) Option {
	return func(h *History) {
		if src != nil {
			h.ids = src
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHistory creates an empty history.
func NewHistory(opts ...Option) *History {
	h := &History{
		limit: DefaultLimit,
		ids:   UUIDSource(),
		log:   logging.Logger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Apply pushes b onto the applied batches, evicting the oldest batch past the
// limit and dropping everything that could have been redone. It returns the
// new live set. A batch without points changes nothing.
func (h *History) Apply(b Batch) []OrderedPoint {
	if len(b.Points) == 0 {
		return h.Points()
	}
	h.applied = append(h.applied, b.clone())
	if over := len(h.applied) - h.limit; over > 0 {
		h.log.Debug("history limit reached, evicting oldest batches", "evicted", over)
		h.applied = slices.Clone(h.applied[over:])
	}
	h.undone = nil
	return h.derive()
}

// Commit adds points as a new batch. With merge set and an add batch on top of
// the history, the points join that batch instead, so a whole drag undoes in
// one step.
func (h *History) Commit(points []Point, merge bool) []OrderedPoint {
	if len(points) == 0 {
		return h.Points()
	}
	identified := make([]IdentifiedPoint, len(points))
	for i, p := range points {
		identified[i] = IdentifiedPoint{ID: h.ids(), Point: p}
	}

	if n := len(h.applied); merge && n > 0 && h.applied[n-1].Kind == BatchAdd {
		top := &h.applied[n-1]
		top.Points = append(slices.Clip(top.Points), identified...)
		h.undone = nil
		h.log.Debug("merged points into batch", "points", len(points), "batch_size", len(top.Points))
		return h.derive()
	}

	h.log.Debug("committed batch", "points", len(points))
	return h.Apply(Batch{Kind: BatchAdd, Points: identified})
}

// Remove takes points off the canvas as one batch. Points that are not live
// are skipped; if none are left nothing happens.
func (h *History) Remove(points []IdentifiedPoint) []OrderedPoint {
	present := make(map[string]bool, len(h.live))
	for _, p := range h.live {
		present[p.ID] = true
	}

	keep := make([]IdentifiedPoint, 0, len(points))
	for _, p := range points {
		if !present[p.ID] {
			continue
		}
		present[p.ID] = false
		keep = append(keep, p)
	}
	if skipped := len(points) - len(keep); skipped > 0 {
		h.log.Debug("skipped points that are not live", "skipped", skipped)
	}
	if len(keep) == 0 {
		return h.Points()
	}
	return h.Apply(Batch{Kind: BatchRemove, Points: keep})
}

// Clear removes every live point in a single batch.
func (h *History) Clear() []OrderedPoint {
	snapshot := make([]IdentifiedPoint, len(h.live))
	for i, p := range h.live {
		snapshot[i] = p.IdentifiedPoint
	}
	return h.Remove(snapshot)
}

// Undo moves the newest applied batch onto the redo stack.
func (h *History) Undo() []OrderedPoint {
	n := len(h.applied)
	if n == 0 {
		return h.Points()
	}
	h.undone = append(h.undone, h.applied[n-1])
	h.applied = h.applied[:n-1]
	return h.derive()
}

// Redo re-applies the most recently undone batch.
func (h *History) Redo() []OrderedPoint {
	n := len(h.undone)
	if n == 0 {
		return h.Points()
	}
	h.applied = append(h.applied, h.undone[n-1])
	h.undone = h.undone[:n-1]
	return h.derive()
}

// Points returns the live set in render order.
func (h *History) Points() []OrderedPoint {
	return slices.Clone(h.live)
}

// Last returns the live point with the highest draw index.
func (h *History) Last() (OrderedPoint, bool) {
	if len(h.live) == 0 {
		return OrderedPoint{}, false
	}
	return h.live[len(h.live)-1], true
}

// Len reports the number of applied batches.
func (h *History) Len() int { return len(h.applied) }

func (h *History) CanUndo() bool { return len(h.applied) > 0 }

func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Applied returns a copy of the applied batches, oldest first.
func (h *History) Applied() []Batch {
	out := make([]Batch, len(h.applied))
	for i, b := range h.applied {
		out[i] = b.clone()
	}
	return out
}

func (h *History) derive() []OrderedPoint {
	h.live = Derive(h.applied)
	return h.Points()
}

// Derive folds batches from an empty canvas, oldest first, and returns the
// surviving points in render order.
func Derive(batches []Batch) []OrderedPoint {
	live := make(map[string]IdentifiedPoint)
	var order []string
	for _, b := range batches {
		switch b.Kind {
		case BatchAdd:
			for _, p := range b.Points {
				if _, ok := live[p.ID]; ok {
					continue
				}
				live[p.ID] = p
				order = append(order, p.ID)
			}
		case BatchRemove:
			for _, p := range b.Points {
				delete(live, p.ID)
			}
		}
	}

	points := make([]IdentifiedPoint, 0, len(live))
	for _, id := range order {
		p, ok := live[id]
		if !ok {
			continue
		}
		delete(live, id)
		points = append(points, p)
	}
	return Resolve(points)
}
