package ui

import (
	"image/color"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"WormBoard/internal/board"
	"WormBoard/internal/state"
	"WormBoard/internal/tools"
)

var (
	dotColor       = color.NRGBA{R: 40, G: 60, B: 220, A: 255}
	candidateColor = color.NRGBA{R: 220, G: 40, B: 60, A: 120}
)

// BoardWidget draws the ordered points and routes pointer and keyboard input
// to a board session. Without a session it only displays what SetPoints is
// given, which is how viewers follow a shared board.
type BoardWidget struct {
	widget.BaseWidget

	session *board.Session
	dotSize float32

	points     []state.OrderedPoint
	candidates []state.Point
	mu         sync.RWMutex

	held      bool
	modifiers tools.Modifiers
	statusBar *widget.Label

	// onHistory runs after SetPoints, for controls that follow the history.
	onHistory func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Focusable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Keyable = (*BoardWidget)(nil)

func NewBoardWidget(s *board.Session, dotSize float64) *BoardWidget {
	b := &BoardWidget{
		session:   s,
		dotSize:   float32(dotSize),
		statusBar: widget.NewLabel("Ready"),
	}
	if s != nil {
		b.points = s.OrderedPoints()
	}
	b.ExtendBaseWidget(b)
	return b
}

// Session returns the session behind the widget, nil for a viewer.
func (b *BoardWidget) Session() *board.Session { return b.session }

// StatusBar is the label SetStatus writes to.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetPoints replaces the drawn points. Must be called on the UI goroutine.
func (b *BoardWidget) SetPoints(points []state.OrderedPoint) {
	b.mu.Lock()
	b.points = points
	b.mu.Unlock()
	b.Refresh()
	if b.onHistory != nil {
		b.onHistory()
	}
}

// SetStatus updates the status bar from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) refreshCandidates() {
	if b.session == nil {
		return
	}
	b.mu.Lock()
	b.candidates = b.session.Candidates()
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) pointerEvent(pos fyne.Position, mods fyne.KeyModifier) tools.PointerEvent {
	ev := tools.PointerEvent{
		Pos:       state.Pt(float64(pos.X), float64(pos.Y)),
		Modifiers: modifiersFromFyne(mods) | b.modifiers,
	}
	if b.held {
		ev.Buttons = tools.ButtonPrimary
	}
	return ev
}

func modifiersFromFyne(m fyne.KeyModifier) tools.Modifiers {
	var out tools.Modifiers
	if m&fyne.KeyModifierShift != 0 {
		out |= tools.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		out |= tools.ModCtrl
	}
	if m&fyne.KeyModifierAlt != 0 {
		out |= tools.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		out |= tools.ModSuper
	}
	return out
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.session == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		c.Focus(b)
	}
	b.held = true
	b.session.HandlePointerDown(b.pointerEvent(e.Position, e.Modifier))
	b.refreshCandidates()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if b.session == nil || e.Button != desktop.MouseButtonPrimary || !b.held {
		return
	}
	b.held = false
	b.session.HandlePointerUp(b.pointerEvent(e.Position, e.Modifier))
	b.refreshCandidates()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.session == nil {
		return
	}
	b.session.HandlePointerMove(b.pointerEvent(e.Position, e.Modifier))
	b.refreshCandidates()
}

func (b *BoardWidget) MouseOut() {
	b.mu.Lock()
	b.candidates = nil
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.session == nil || !b.held {
		return
	}
	b.session.HandlePointerMove(b.pointerEvent(e.Position, 0))
	b.refreshCandidates()
}

// DragEnd stands in for MouseUp when the button is released off the widget.
func (b *BoardWidget) DragEnd() {
	if b.session == nil || !b.held {
		return
	}
	b.held = false
	b.session.HandlePointerUp(tools.PointerEvent{Pos: b.session.Pointer(), Modifiers: b.modifiers})
}

func (b *BoardWidget) FocusGained() {}

func (b *BoardWidget) FocusLost() {
	b.modifiers = 0
}

func (b *BoardWidget) TypedRune(rune) {}

func (b *BoardWidget) TypedKey(*fyne.KeyEvent) {}

func (b *BoardWidget) KeyDown(e *fyne.KeyEvent) {
	b.handleKey(e.Name, false)
}

func (b *BoardWidget) KeyUp(e *fyne.KeyEvent) {
	b.handleKey(e.Name, true)
}

func (b *BoardWidget) handleKey(name fyne.KeyName, released bool) {
	key, mod := keyFromFyne(name)
	if mod != 0 {
		if released {
			b.modifiers &^= mod
		} else {
			b.modifiers |= mod
		}
	}
	if b.session == nil || key == "" {
		return
	}
	b.session.HandleKey(tools.KeyEvent{Key: key, Modifiers: b.modifiers, Released: released})
	b.refreshCandidates()
}

// keyFromFyne maps a fyne key name to a board key, and to the modifier it
// represents when it is one.
func keyFromFyne(name fyne.KeyName) (tools.Key, tools.Modifiers) {
	switch name {
	case fyne.KeyEscape:
		return tools.KeyEscape, 0
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		return tools.KeyShift, tools.ModShift
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		return tools.KeyCtrl, tools.ModCtrl
	case desktop.KeySuperLeft, desktop.KeySuperRight:
		return "", tools.ModSuper
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		return "", tools.ModAlt
	}
	if len(name) == 1 {
		return tools.Key(strings.ToLower(string(name))), 0
	}
	return "", 0
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.rebuild()
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	size       fyne.Size

	// dots is reused between refreshes; objects is what Objects returns.
	dots    []*canvas.Circle
	objects []fyne.CanvasObject
}

// visible is the area a dot must fall in to be drawn. Before the first
// layout everything counts as visible.
func (r *boardWidgetRenderer) visible(p state.Point) bool {
	if r.size.IsZero() {
		return true
	}
	area := state.Rect{Width: float64(r.size.Width), Height: float64(r.size.Height)}
	return area.Pad(float64(r.board.dotSize) / 2).Contains(p)
}

// rebuild lists the background, then the points in draw order so the last
// drawn point ends up on top, then the tool's preview.
func (r *boardWidgetRenderer) rebuild() {
	b := r.board
	b.mu.RLock()
	defer b.mu.RUnlock()

	objects := make([]fyne.CanvasObject, 0, 1+len(b.points)+len(b.candidates))
	objects = append(objects, r.background)
	n := 0
	place := func(p state.Point, c color.Color) {
		if !r.visible(p) {
			return
		}
		if n == len(r.dots) {
			r.dots = append(r.dots, canvas.NewCircle(c))
		}
		circle := r.dots[n]
		n++
		if circle.FillColor != c {
			circle.FillColor = c
			circle.Refresh()
		}
		d := b.dotSize
		circle.Resize(fyne.NewSize(d, d))
		circle.Move(fyne.NewPos(float32(p.X)-d/2, float32(p.Y)-d/2))
		objects = append(objects, circle)
	}
	for _, p := range b.points {
		place(p.Point, dotColor)
	}
	for _, p := range b.candidates {
		place(p, candidateColor)
	}
	r.objects = objects
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
	r.rebuild()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
