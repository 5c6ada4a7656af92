// Package board ties the point history and the drawing tools together into
// a Session, the single object input handlers talk to.
package board

import (
	"log/slog"

	"WormBoard/internal/config"
	"WormBoard/internal/logging"
	"WormBoard/internal/state"
	"WormBoard/internal/tools"
)

// Session holds everything one drawing board needs: the history, the active
// tool, and the last known pointer position and modifiers.
//
// A Session is not safe for concurrent use. All handlers are expected to run
// on one goroutine, such as the UI event loop.
type Session struct {
	history *state.History
	tool    tools.Tool
	spacing float64

	pointer state.Point
	mods    tools.Modifiers
	live    []state.OrderedPoint

	log *slog.Logger

	// OnChange is called with the new render order after every change to
	// the history.
	OnChange func(points []state.OrderedPoint)
}

type Option func(*sessionOptions)

type sessionOptions struct {
	history []state.Option
	log     *slog.Logger
}

// WithHistoryOptions passes extra options to the underlying history.
func WithHistoryOptions(opts ...state.Option) Option {
	return func(o *sessionOptions) {
		o.history = append(o.history, opts...)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.log = l
	}
}

// New creates an empty session configured by cfg. A dot size that is not
// positive is replaced by the default one.
func New(cfg config.Config, opts ...Option) *Session {
	o := sessionOptions{log: logging.Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.DotSize <= 0 {
		def := config.Default().DotSize
		o.log.Warn("dot size must be positive, using default", "dot_size", cfg.DotSize, "default", def)
		cfg.DotSize = def
	}
	historyOpts := append([]state.Option{
		state.WithLimit(cfg.HistoryLimit),
		state.WithLogger(o.log),
	}, o.history...)

	spacing := cfg.Spacing()
	return &Session{
		history: state.NewHistory(historyOpts...),
		tool:    tools.New(cfg.ActiveTool(), spacing),
		spacing: spacing,
		log:     o.log,
	}
}

// commitFunc adapts a function to tools.Canvas.
type commitFunc func(points []state.Point, merge bool)

func (f commitFunc) Commit(points []state.Point, merge bool) { f(points, merge) }

func (s *Session) canvas() tools.Canvas {
	return commitFunc(func(points []state.Point, merge bool) {
		if len(points) == 0 {
			return
		}
		s.apply(s.history.Commit(points, merge), false)
	})
}

// apply records the new live set and tells listeners. With resync set, the
// active tool's soft lock follows the last drawn point.
func (s *Session) apply(live []state.OrderedPoint, resync bool) {
	s.live = live
	if resync {
		last, ok := s.history.Last()
		s.tool.Resync(last.Point, ok)
	}
	if s.OnChange != nil {
		s.OnChange(s.OrderedPoints())
	}
}

// SetActiveTool switches tools. The outgoing tool loses any soft lock; the
// history is left alone.
func (s *Session) SetActiveTool(kind tools.Kind) {
	if s.tool.Kind() == kind {
		return
	}
	s.tool.Reset()
	s.tool = tools.New(kind, s.spacing)
	s.log.Debug("switched tool", "tool", kind.String())
}

func (s *Session) ActiveTool() tools.Kind { return s.tool.Kind() }

func (s *Session) track(ev tools.PointerEvent) {
	s.pointer = ev.Pos
	s.mods = ev.Modifiers
}

func (s *Session) HandlePointerDown(ev tools.PointerEvent) {
	s.track(ev)
	s.tool.PointerDown(s.canvas(), ev)
}

func (s *Session) HandlePointerMove(ev tools.PointerEvent) {
	s.track(ev)
	s.tool.PointerMove(s.canvas(), ev)
}

func (s *Session) HandlePointerUp(ev tools.PointerEvent) {
	s.track(ev)
	s.tool.PointerUp(s.canvas(), ev)
}

// HandleKey handles the board shortcuts and passes every other key to the
// active tool.
func (s *Session) HandleKey(ev tools.KeyEvent) {
	s.mods = ev.Modifiers
	if ev.Key == tools.KeyShift {
		if ev.Released {
			s.mods &^= tools.ModShift
		} else {
			s.mods |= tools.ModShift
		}
	}
	if !ev.Released && s.shortcut(ev) {
		return
	}
	s.tool.Key(s.canvas(), ev)
}

func (s *Session) shortcut(ev tools.KeyEvent) bool {
	command := ev.Modifiers&(tools.ModCtrl|tools.ModSuper) != 0
	switch {
	case command && ev.Key == "z" && ev.Modifiers&tools.ModShift != 0:
		s.Redo()
	case command && ev.Key == "z":
		s.Undo()
	case command && ev.Key == "y":
		s.Redo()
	case command:
		return false
	case ev.Key == "p":
		s.SetActiveTool(tools.Pencil)
	case ev.Key == "w":
		s.SetActiveTool(tools.Wand)
	case ev.Key == "l":
		s.SetActiveTool(tools.Line)
	default:
		return false
	}
	return true
}

// Undo reverts the newest batch. Nothing happens when there is none.
func (s *Session) Undo() {
	if !s.history.CanUndo() {
		return
	}
	s.apply(s.history.Undo(), true)
}

// Redo re-applies the last undone batch, if any.
func (s *Session) Redo() {
	if !s.history.CanRedo() {
		return
	}
	s.apply(s.history.Redo(), true)
}

// ClearAll removes every live point as one undoable batch.
func (s *Session) ClearAll() {
	if len(s.live) == 0 {
		return
	}
	s.log.Info("clearing board", "points", len(s.live))
	s.apply(s.history.Clear(), true)
}

// Load commits points as a batch of their own, such as the seed shape or a
// saved snapshot.
func (s *Session) Load(points []state.Point) {
	if len(points) == 0 {
		return
	}
	s.log.Info("loaded points", "points", len(points))
	s.apply(s.history.Commit(points, false), false)
}

// OrderedPoints returns the live points in render order.
func (s *Session) OrderedPoints() []state.OrderedPoint {
	out := make([]state.OrderedPoint, len(s.live))
	copy(out, s.live)
	return out
}

// Candidates previews what the active tool would place at the pointer.
func (s *Session) Candidates() []state.Point {
	return s.tool.Candidates(s.pointer, s.mods)
}

func (s *Session) Pointer() state.Point { return s.pointer }

func (s *Session) CanUndo() bool { return s.history.CanUndo() }

func (s *Session) CanRedo() bool { return s.history.CanRedo() }
