// Package ebiten draws blockfall in a window and reads the keyboard, both
// through the Ebiten game engine.
package ebiten

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

const (
	CellSize = 28

	offsetX = 40
	offsetY = 40

	ScreenWidth  = offsetX*2 + (tetris.Width+2)*CellSize + 200
	ScreenHeight = offsetY*2 + (tetris.Height+2)*CellSize
)

// Overlay draws on top of the game, such as a debug panel.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
	// WantsKeyboard reports whether key presses belong to the overlay.
	WantsKeyboard() bool
}

// Game implements ebiten.Game for a running blockfall session. Game state
// arrives through the Recorder; the session itself runs elsewhere.
type Game struct {
	rec      *ui.Recorder
	keys     *KeyboardInput
	overlay  Overlay
	done     <-chan struct{}
	lifetime func() tetris.Lifetime
}

// Option configures a Game.
type Option func(*Game)

// WithOverlay draws o over the board every frame.
func WithOverlay(o Overlay) Option {
	return func(g *Game) { g.overlay = o }
}

// WithLifetime shows the lifetime record returned by fn on the side panel.
func WithLifetime(fn func() tetris.Lifetime) Option {
	return func(g *Game) { g.lifetime = fn }
}

// NewGame creates the window game. The window closes once done is closed.
func NewGame(rec *ui.Recorder, keys *KeyboardInput, done <-chan struct{}, opts ...Option) *Game {
	g := &Game{rec: rec, keys: keys, done: done}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	if g.overlay == nil {
		g.keys.Poll(time.Now())
		return nil
	}
	if !g.overlay.WantsKeyboard() {
		g.keys.Poll(time.Now())
	}
	g.overlay.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.BackgroundColor)
	f := g.rec.Frame()

	for row := 0; row <= tetris.Height+1; row++ {
		for col := 0; col <= tetris.Width+1; col++ {
			c := tetris.Cell{Row: row, Col: col}
			if clr, ok := ui.OccupantColor(f.Board.At(c)); ok {
				drawCell(screen, c, clr)
			}
		}
	}

	if ghost, ok := f.Ghost(); ok {
		for _, c := range ghost {
			x, y := cellOrigin(c)
			vector.DrawFilledRect(screen, x, y, CellSize, CellSize, ui.GhostColor, false)
		}
	}
	if f.HasActive {
		for _, c := range f.Active.Cells {
			drawCell(screen, c, ui.Color(f.Active.Variant))
		}
	}

	g.drawPanel(screen, &f)

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return ScreenWidth, ScreenHeight
}

func (g *Game) drawPanel(screen *ebiten.Image, f *ui.Frame) {
	x := offsetX + (tetris.Width+2)*CellSize + 24
	y := offsetY

	for i, line := range PanelLines(f) {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*18)
	}

	if f.HasNext {
		px, py := float32(x), float32(y+9*18)
		for _, off := range tetris.Offsets(f.Next, tetris.Up) {
			vector.DrawFilledRect(screen,
				px+float32(off.Col+1)*CellSize/2, py+float32(off.Row)*CellSize/2,
				CellSize/2-1, CellSize/2-1, ui.Color(f.Next), false)
		}
	}

	if g.lifetime != nil {
		l := g.lifetime()
		base := y + 14*18
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BEST SCORE  %d", l.HighestScore), x, base)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BEST LINES  %d", l.HighestLines), x, base+18)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("GAMES       %d", l.GamesPlayed), x, base+36)
	}
}

// PanelLines is the side panel text for f.
func PanelLines(f *ui.Frame) []string {
	lines := []string{
		"SCORE", fmt.Sprintf("%d", f.Stats.Score),
		"LEVEL", fmt.Sprintf("%d", f.Level),
		"LINES", fmt.Sprintf("%d", f.Stats.LinesCleared),
		"",
		"NEXT",
	}
	if f.Over {
		lines = append(lines, "", "", "", "", "GAME OVER")
		if f.Summary.NewBest {
			lines = append(lines, "NEW BEST!")
		}
	}
	return lines
}

func cellOrigin(c tetris.Cell) (float32, float32) {
	return float32(offsetX + c.Col*CellSize), float32(offsetY + c.Row*CellSize)
}

func drawCell(screen *ebiten.Image, c tetris.Cell, clr color.Color) {
	x, y := cellOrigin(c)
	vector.DrawFilledRect(screen, x, y, CellSize, CellSize, clr, false)
	vector.StrokeRect(screen, x, y, CellSize, CellSize, 1, ui.BackgroundColor, false)
}
