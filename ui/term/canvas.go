// Package term draws blockfall in a terminal with termbox and reads the
// keyboard from it.
package term

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

// Each board cell is two columns wide so squares look square.
const (
	cellWidth = 2

	boardLeft = 2
	boardTop  = 1
	panelLeft = boardLeft + (tetris.Width+2)*cellWidth + 3

	CanvasWidth  = panelLeft + 24
	CanvasHeight = boardTop + tetris.Height + 3
)

// Glyph is one terminal cell.
type Glyph struct {
	Ch     rune
	Fg, Bg termbox.Attribute
}

// Canvas is a terminal-sized picture built without touching the terminal.
type Canvas struct {
	Width, Height int
	Glyphs        []Glyph
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Glyphs: make([]Glyph, w*h)}
	for i := range c.Glyphs {
		c.Glyphs[i] = Glyph{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	}
	return c
}

func (c *Canvas) At(x, y int) Glyph {
	return c.Glyphs[y*c.Width+x]
}

func (c *Canvas) Set(x, y int, g Glyph) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Glyphs[y*c.Width+x] = g
}

// Text writes s from (x, y), advancing by each rune's display width. It
// returns the column after the last rune.
func (c *Canvas) Text(x, y int, s string, fg termbox.Attribute) int {
	for _, r := range s {
		c.Set(x, y, Glyph{Ch: r, Fg: fg, Bg: termbox.ColorDefault})
		w := runewidth.RuneWidth(r)
		for i := 1; i < w; i++ {
			c.Set(x+i, y, Glyph{Ch: 0, Fg: fg, Bg: termbox.ColorDefault})
		}
		x += max(w, 1)
	}
	return x
}

// Line returns row y as a string, wide-rune padding removed.
func (c *Canvas) Line(y int) string {
	rs := make([]rune, 0, c.Width)
	for x := range c.Width {
		if ch := c.At(x, y).Ch; ch != 0 {
			rs = append(rs, ch)
		}
	}
	return string(rs)
}

var variantAttrs = [tetris.VariantCount]termbox.Attribute{
	tetris.Chord:  termbox.ColorCyan,
	tetris.Square: termbox.ColorYellow,
	tetris.TBlock: termbox.ColorMagenta,
	tetris.LBlock: termbox.ColorWhite,
	tetris.JBlock: termbox.ColorBlue,
	tetris.ZBlock: termbox.ColorRed,
	tetris.SBlock: termbox.ColorGreen,
}

func variantAttr(v tetris.Variant) termbox.Attribute {
	if !v.Valid() {
		return termbox.ColorDefault
	}
	return variantAttrs[v]
}

func (c *Canvas) block(cell tetris.Cell, ch rune, fg, bg termbox.Attribute) {
	x := boardLeft + cell.Col*cellWidth
	y := boardTop + cell.Row
	for i := range cellWidth {
		c.Set(x+i, y, Glyph{Ch: ch, Fg: fg, Bg: bg})
	}
}

// Compose draws f onto a new canvas.
func Compose(f *ui.Frame) *Canvas {
	c := NewCanvas(CanvasWidth, CanvasHeight)

	for row := 0; row <= tetris.Height+1; row++ {
		for col := 0; col <= tetris.Width+1; col++ {
			cell := tetris.Cell{Row: row, Col: col}
			o := f.Board.At(cell)
			switch o {
			case tetris.Vacant:
				c.block(cell, ' ', termbox.ColorDefault, termbox.ColorDefault)
			case tetris.Border:
				c.block(cell, '░', termbox.ColorWhite, termbox.ColorDefault)
			default:
				v, _ := o.Variant()
				c.block(cell, '█', variantAttr(v), termbox.ColorDefault)
			}
		}
	}

	if ghost, ok := f.Ghost(); ok {
		for _, cell := range ghost {
			c.block(cell, '·', termbox.ColorWhite, termbox.ColorDefault)
		}
	}
	if f.HasActive {
		for _, cell := range f.Active.Cells {
			c.block(cell, '█', variantAttr(f.Active.Variant)|termbox.AttrBold, termbox.ColorDefault)
		}
	}

	y := boardTop
	label := func(name string, value any) {
		x := c.Text(panelLeft, y, name, termbox.ColorWhite|termbox.AttrBold)
		c.Text(x+1, y, fmt.Sprint(value), termbox.ColorDefault)
		y += 2
	}
	label("SCORE", f.Stats.Score)
	label("LEVEL", int(f.Level))
	label("LINES", f.Stats.LinesCleared)

	c.Text(panelLeft, y, "NEXT", termbox.ColorWhite|termbox.AttrBold)
	if f.HasNext {
		for _, off := range tetris.Offsets(f.Next, tetris.Up) {
			x := panelLeft + (off.Col+1)*cellWidth
			for i := range cellWidth {
				c.Set(x+i, y+1+off.Row, Glyph{Ch: '█', Fg: variantAttr(f.Next), Bg: termbox.ColorDefault})
			}
		}
	}
	y += 6

	if f.Over {
		c.Text(panelLeft, y, "GAME OVER", termbox.ColorRed|termbox.AttrBold)
		if f.Summary.NewBest {
			c.Text(panelLeft, y+1, "NEW BEST!", termbox.ColorYellow)
		}
	}
	c.Text(panelLeft, CanvasHeight-1, "←→ move ↑ rotate # quit", termbox.ColorDefault)
	return c
}
