package tools

import "WormBoard/internal/state"

// Buttons is the set of pointer buttons held during an event.
type Buttons uint8

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonMiddle
)

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Key names a keyboard key. Printable keys use their lower-case rune.
type Key string

const (
	KeyEscape Key = "Escape"
	KeyShift  Key = "Shift"
	KeyCtrl   Key = "Control"
)

// PointerEvent is a pointer sample already translated into canvas space.
type PointerEvent struct {
	Pos       state.Point
	Buttons   Buttons
	Modifiers Modifiers
}

func (ev PointerEvent) primary() bool { return ev.Buttons&ButtonPrimary != 0 }

// KeyEvent is a key press, or a release when Released is set.
type KeyEvent struct {
	Key       Key
	Modifiers Modifiers
	Released  bool
}

func (ev KeyEvent) releasesLock() bool {
	return ev.Key == KeyEscape && !ev.Released
}
