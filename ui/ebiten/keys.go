package ebiten

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
)

// Binding maps a key to a command. Repeating bindings keep sending while
// the key is held.
type Binding struct {
	Key     ebiten.Key
	Command tetris.Command
	Repeat  bool
}

// DefaultBindings are the arrow keys plus the number-pad aliases 4, 6, 5, 8
// and 0 for left, right, rotate, soft drop and hard drop.
func DefaultBindings() []Binding {
	return []Binding{
		{ebiten.KeyArrowLeft, tetris.MoveLeft, true},
		{ebiten.KeyArrowRight, tetris.MoveRight, true},
		{ebiten.KeyArrowDown, tetris.SoftDrop, true},
		{ebiten.KeyArrowUp, tetris.Rotate, false},
		{ebiten.KeySpace, tetris.HardDrop, false},
		{ebiten.KeyEscape, tetris.Quit, false},
		{ebiten.KeyDigit4, tetris.MoveLeft, true},
		{ebiten.KeyDigit6, tetris.MoveRight, true},
		{ebiten.KeyDigit8, tetris.SoftDrop, true},
		{ebiten.KeyDigit5, tetris.Rotate, false},
		{ebiten.KeyDigit0, tetris.HardDrop, false},
		{ebiten.KeyNumpad4, tetris.MoveLeft, true},
		{ebiten.KeyNumpad6, tetris.MoveRight, true},
		{ebiten.KeyNumpad8, tetris.SoftDrop, true},
		{ebiten.KeyNumpad5, tetris.Rotate, false},
		{ebiten.KeyNumpad0, tetris.HardDrop, false},
	}
}

// quitChar is typed to quit, whatever key produces it.
const quitChar = '#'

// KeyboardInput polls ebiten's key state once per tick and feeds a
// Repeater.
type KeyboardInput struct {
	*input.Repeater
	bindings []Binding
	chars    []rune
}

// NewKeyboardInput creates keyboard input that repeats held keys at most
// once per every.
func NewKeyboardInput(bindings []Binding, every time.Duration) *KeyboardInput {
	return &KeyboardInput{
		Repeater: input.NewRepeater(every, 32),
		bindings: bindings,
	}
}

// Poll reads the keyboard. It must be called from ebiten's Update. It
// reports whether a quit was requested.
func (k *KeyboardInput) Poll(now time.Time) bool {
	quit := false
	for _, b := range k.bindings {
		switch {
		case inpututil.IsKeyJustPressed(b.Key):
			k.press(b, now)
		case b.Repeat && ebiten.IsKeyPressed(b.Key):
			k.Hold(b.Command, now)
		case b.Repeat && inpututil.IsKeyJustReleased(b.Key):
			k.Release(b.Command)
		}
		if b.Command == tetris.Quit && inpututil.IsKeyJustPressed(b.Key) {
			quit = true
		}
	}

	k.chars = ebiten.AppendInputChars(k.chars[:0])
	if slices.Contains(k.chars, quitChar) {
		k.Press(tetris.Quit)
		quit = true
	}
	return quit
}

func (k *KeyboardInput) press(b Binding, now time.Time) {
	if b.Repeat {
		k.Release(b.Command)
		k.Hold(b.Command, now)
		return
	}
	k.Press(b.Command)
}
