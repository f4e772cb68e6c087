package tetris

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Board dimensions. The interior is Width x Height; a one-cell border of
// walls surrounds it, so interior rows are 1..Height and interior columns
// are 1..Width.
const (
	Width  = 10
	Height = 20

	// SpawnRow is the row every new piece is anchored on.
	SpawnRow = 1

	topRow    = 0
	bottomRow = Height + 1
	leftCol   = 0
	rightCol  = Width + 1
)

// Occupant describes what fills a board cell.
type Occupant uint8

const (
	Vacant Occupant = iota
	Border
	lockedBase
)

// LockedBy returns the occupant left behind by a locked piece of variant v.
func LockedBy(v Variant) Occupant {
	return lockedBase + Occupant(v)
}

// Variant reports the piece variant that filled the cell, if any.
func (o Occupant) Variant() (Variant, bool) {
	if o < lockedBase {
		return 0, false
	}
	return Variant(o - lockedBase), true
}

// cellKey packs an in-bounds cell into an integer map key.
type cellKey uint16

func keyOf(c Cell) cellKey {
	return cellKey(c.Row)<<8 | cellKey(c.Col)
}

func (k cellKey) cell() Cell {
	return Cell{Row: int(k >> 8), Col: int(k & 0xFF)}
}

func inBounds(c Cell) bool {
	return c.Row >= topRow && c.Row <= bottomRow && c.Col >= leftCol && c.Col <= rightCol
}

func isBorder(c Cell) bool {
	return c.Row == topRow || c.Row == bottomRow || c.Col == leftCol || c.Col == rightCol
}

// Board is the set of occupied cells: the permanent border plus every
// locked piece cell. Cells outside the bordered rectangle count as occupied.
type Board struct {
	cells *intmap.Map[cellKey, Occupant]
	full  bool
}

// NewBoard creates a board holding only its border.
func NewBoard() *Board {
	b := &Board{
		cells: intmap.New[cellKey, Occupant]((Width + 2) * (Height + 2)),
	}
	b.Reset()
	return b
}

// Reset drops every locked cell and clears the full flag.
func (b *Board) Reset() {
	b.cells.Clear()
	b.full = false
	for row := topRow; row <= bottomRow; row++ {
		b.cells.Put(keyOf(Cell{row, leftCol}), Border)
		b.cells.Put(keyOf(Cell{row, rightCol}), Border)
	}
	for col := leftCol + 1; col < rightCol; col++ {
		b.cells.Put(keyOf(Cell{topRow, col}), Border)
		b.cells.Put(keyOf(Cell{bottomRow, col}), Border)
	}
}

// IsOccupied reports whether c holds a border or locked cell.
func (b *Board) IsOccupied(c Cell) bool {
	if !inBounds(c) {
		return true
	}
	return b.cells.Has(keyOf(c))
}

// At returns the occupant of c. Out-of-bounds cells read as Border.
func (b *Board) At(c Cell) Occupant {
	if !inBounds(c) {
		return Border
	}
	o, _ := b.cells.Get(keyOf(c))
	return o
}

// Occupy locks the given cells with occupant o. Occupying a cell that is
// already filled, one outside the interior, or the same cell twice is a
// resolver or geometry bug and panics before anything is written.
func (b *Board) Occupy(cells Shape, o Occupant) {
	for i, c := range cells {
		b.checkVacant(c)
		for _, prev := range cells[:i] {
			if prev == c {
				panic(fmt.Sprintf("tetris: occupy %s twice in one shape", c))
			}
		}
	}
	for _, c := range cells {
		b.cells.Put(keyOf(c), o)
	}
}

// OccupyCell locks a single cell, with the same checks as Occupy.
func (b *Board) OccupyCell(c Cell, o Occupant) {
	b.checkVacant(c)
	b.cells.Put(keyOf(c), o)
}

func (b *Board) checkVacant(c Cell) {
	if !inBounds(c) || isBorder(c) {
		panic(fmt.Sprintf("tetris: occupy %s outside the interior", c))
	}
	if b.cells.Has(keyOf(c)) {
		panic(fmt.Sprintf("tetris: occupy %s which is already occupied", c))
	}
}

// RowIsComplete reports whether every interior column of row is occupied.
// Border rows are never complete.
func (b *Board) RowIsComplete(row int) bool {
	if row <= topRow || row >= bottomRow {
		return false
	}
	for col := leftCol + 1; col < rightCol; col++ {
		if !b.cells.Has(keyOf(Cell{row, col})) {
			return false
		}
	}
	return true
}

// ClearRow removes the interior cells of row.
func (b *Board) ClearRow(row int) {
	if row <= topRow || row >= bottomRow {
		return
	}
	for col := leftCol + 1; col < rightCol; col++ {
		b.cells.Del(keyOf(Cell{row, col}))
	}
}

// ShiftRowsDown moves every locked cell strictly above belowRow down by one
// row. Border cells stay put.
func (b *Board) ShiftRowsDown(belowRow int) {
	type moved struct {
		to Cell
		o  Occupant
	}
	var pending []moved
	b.cells.ForEach(func(k cellKey, o Occupant) bool {
		c := k.cell()
		if o != Border && c.Row < belowRow {
			pending = append(pending, moved{to: Cell{c.Row + 1, c.Col}, o: o})
		}
		return true
	})
	for _, m := range pending {
		b.cells.Del(keyOf(Cell{m.to.Row - 1, m.to.Col}))
	}
	for _, m := range pending {
		b.cells.Put(keyOf(m.to), m.o)
	}
}

// MarkFull flags that a piece locked without leaving the spawn row.
func (b *Board) MarkFull() {
	b.full = true
}

// Full reports whether the board has topped out.
func (b *Board) Full() bool {
	return b.full
}

// LockedCount returns the number of locked (non-border) cells.
func (b *Board) LockedCount() int {
	n := 0
	b.cells.ForEach(func(_ cellKey, o Occupant) bool {
		if o != Border {
			n++
		}
		return true
	})
	return n
}

// BoardView is an immutable snapshot of the interior, indexed [row-1][col-1].
type BoardView [Height][Width]Occupant

// At returns the occupant at interior coordinates c.
func (v *BoardView) At(c Cell) Occupant {
	if c.Row < 1 || c.Row > Height || c.Col < 1 || c.Col > Width {
		return Border
	}
	return v[c.Row-1][c.Col-1]
}

// View snapshots the interior for render sinks.
func (b *Board) View() BoardView {
	var v BoardView
	b.cells.ForEach(func(k cellKey, o Occupant) bool {
		if o != Border {
			c := k.cell()
			v[c.Row-1][c.Col-1] = o
		}
		return true
	})
	return v
}
