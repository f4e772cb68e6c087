package term

import (
	"context"
	"sync"

	"github.com/nsf/termbox-go"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

// Screen owns the terminal for the duration of a session.
type Screen struct {
	mu sync.Mutex
}

// Open initialises termbox. Close must be called to restore the terminal.
func Open() (*Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()
	return &Screen{}, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

// Draw paints f. It is used as a ui.Recorder change callback, so it may be
// called from the controller goroutine.
func (s *Screen) Draw(f ui.Frame) {
	c := Compose(&f)

	s.mu.Lock()
	defer s.mu.Unlock()
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y := range c.Height {
		for x := range c.Width {
			g := c.At(x, y)
			if g.Ch == 0 {
				continue
			}
			termbox.SetCell(x, y, g.Ch, g.Fg, g.Bg)
		}
	}
	termbox.Flush()
}

// CommandFor maps a terminal key event to a game command.
func CommandFor(ev termbox.Event) (tetris.Command, bool) {
	if ev.Type != termbox.EventKey {
		return 0, false
	}
	switch ev.Key {
	case termbox.KeyArrowLeft:
		return tetris.MoveLeft, true
	case termbox.KeyArrowRight:
		return tetris.MoveRight, true
	case termbox.KeyArrowUp:
		return tetris.Rotate, true
	case termbox.KeyArrowDown:
		return tetris.SoftDrop, true
	case termbox.KeySpace:
		return tetris.HardDrop, true
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return tetris.Quit, true
	}
	switch ev.Ch {
	case '4':
		return tetris.MoveLeft, true
	case '6':
		return tetris.MoveRight, true
	case '5':
		return tetris.Rotate, true
	case '8':
		return tetris.SoftDrop, true
	case '0':
		return tetris.HardDrop, true
	case '#', 'q':
		return tetris.Quit, true
	}
	return 0, false
}

// Keyboard reads terminal events into commands. The terminal repeats held
// keys itself, so every event becomes one command.
type Keyboard struct {
	*input.Channel
}

func NewKeyboard() *Keyboard {
	return &Keyboard{Channel: input.NewChannel(32)}
}

// Run polls termbox until ctx is done or a quit key is read, then closes
// the command channel.
func (k *Keyboard) Run(ctx context.Context) {
	defer k.Close()

	stop := context.AfterFunc(ctx, termbox.Interrupt)
	defer stop()

	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt, termbox.EventError:
			return
		}
		cmd, ok := CommandFor(ev)
		if !ok {
			continue
		}
		k.Send(cmd)
		if cmd == tetris.Quit {
			return
		}
	}
}
