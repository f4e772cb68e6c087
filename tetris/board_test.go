package tetris_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestBoard(t *testing.T) {
	t.Run("new board holds only its border", func(t *testing.T) {
		b := tetris.NewBoard()

		for row := 0; row <= tetris.Height+1; row++ {
			assert.True(t, b.IsOccupied(tetris.Cell{Row: row, Col: 0}))
			assert.True(t, b.IsOccupied(tetris.Cell{Row: row, Col: tetris.Width + 1}))
		}
		for col := 0; col <= tetris.Width+1; col++ {
			assert.True(t, b.IsOccupied(tetris.Cell{Row: 0, Col: col}))
			assert.True(t, b.IsOccupied(tetris.Cell{Row: tetris.Height + 1, Col: col}))
		}
		assert.False(t, b.IsOccupied(tetris.Cell{Row: 1, Col: 1}))
		assert.False(t, b.IsOccupied(tetris.Cell{Row: tetris.Height, Col: tetris.Width}))
		assert.Equal(t, 0, b.LockedCount())
		assert.False(t, b.Full())
		assert.Equal(t, tetris.BoardView{}, b.View())
	})

	t.Run("cells outside the rectangle read as occupied", func(t *testing.T) {
		b := tetris.NewBoard()
		assert.True(t, b.IsOccupied(tetris.Cell{Row: -1, Col: 5}))
		assert.True(t, b.IsOccupied(tetris.Cell{Row: 5, Col: -2}))
		assert.True(t, b.IsOccupied(tetris.Cell{Row: 30, Col: 5}))
		assert.Equal(t, tetris.Border, b.At(tetris.Cell{Row: 5, Col: 40}))
	})

	t.Run("occupy records the variant", func(t *testing.T) {
		b := tetris.NewBoard()
		shape := tetris.Place(tetris.Square, tetris.Up, tetris.Cell{Row: 19, Col: 3})
		b.Occupy(shape, tetris.LockedBy(tetris.Square))

		for _, c := range shape {
			assert.True(t, b.IsOccupied(c))
			v, ok := b.At(c).Variant()
			assert.True(t, ok)
			assert.Equal(t, tetris.Square, v)
		}
		assert.Equal(t, 4, b.LockedCount())

		_, ok := tetris.Border.Variant()
		assert.False(t, ok)
	})

	t.Run("occupying a filled cell panics", func(t *testing.T) {
		b := tetris.NewBoard()
		occupyCell(b, tetris.Cell{Row: 10, Col: 5}, tetris.LockedBy(tetris.Chord))
		assert.Panics(t, func() {
			occupyCell(b, tetris.Cell{Row: 10, Col: 5}, tetris.LockedBy(tetris.Chord))
		})
		assert.Panics(t, func() {
			occupyCell(b, tetris.Cell{Row: 0, Col: 5}, tetris.LockedBy(tetris.Chord))
		})
		assert.Panics(t, func() {
			occupyCell(b, tetris.Cell{Row: 50, Col: 5}, tetris.LockedBy(tetris.Chord))
		})
	})

	t.Run("a shape repeating a cell panics without writing", func(t *testing.T) {
		b := tetris.NewBoard()
		c := tetris.Cell{Row: 5, Col: 5}
		assert.Panics(t, func() {
			b.Occupy(tetris.Shape{c, c, {Row: 5, Col: 6}, {Row: 5, Col: 7}}, tetris.LockedBy(tetris.ZBlock))
		})
		assert.Equal(t, 0, b.LockedCount())
		assert.False(t, b.IsOccupied(c))
	})

	t.Run("row completeness", func(t *testing.T) {
		b := tetris.NewBoard()
		fillRow(b, 20, 7)
		assert.False(t, b.RowIsComplete(20))

		occupyCell(b, tetris.Cell{Row: 20, Col: 7}, tetris.LockedBy(tetris.JBlock))
		assert.True(t, b.RowIsComplete(20))

		assert.False(t, b.RowIsComplete(0))
		assert.False(t, b.RowIsComplete(tetris.Height+1))
	})

	t.Run("clear and shift compacts rows above", func(t *testing.T) {
		b := tetris.NewBoard()
		fillRow(b, 20)
		occupyCell(b, tetris.Cell{Row: 19, Col: 3}, tetris.LockedBy(tetris.ZBlock))
		occupyCell(b, tetris.Cell{Row: 17, Col: 8}, tetris.LockedBy(tetris.SBlock))

		b.ClearRow(20)
		b.ShiftRowsDown(20)

		var want tetris.BoardView
		want[19][2] = tetris.LockedBy(tetris.ZBlock)
		want[17][7] = tetris.LockedBy(tetris.SBlock)
		if diff := cmp.Diff(want, b.View()); diff != "" {
			t.Errorf("board after clear (-want +got):\n%s", diff)
		}
		assert.True(t, b.IsOccupied(tetris.Cell{Row: tetris.Height + 1, Col: 3}), "border survives")
		assert.True(t, b.IsOccupied(tetris.Cell{Row: 19, Col: 0}), "walls survive")
	})

	t.Run("shift leaves rows below untouched", func(t *testing.T) {
		b := tetris.NewBoard()
		occupyCell(b, tetris.Cell{Row: 20, Col: 1}, tetris.LockedBy(tetris.LBlock))
		occupyCell(b, tetris.Cell{Row: 10, Col: 1}, tetris.LockedBy(tetris.LBlock))

		b.ShiftRowsDown(15)

		assert.True(t, b.IsOccupied(tetris.Cell{Row: 20, Col: 1}))
		assert.True(t, b.IsOccupied(tetris.Cell{Row: 11, Col: 1}))
		assert.False(t, b.IsOccupied(tetris.Cell{Row: 10, Col: 1}))
	})

	t.Run("reset drops locked cells and the full flag", func(t *testing.T) {
		b := tetris.NewBoard()
		fillRow(b, 12)
		b.MarkFull()

		b.Reset()

		assert.Equal(t, 0, b.LockedCount())
		assert.False(t, b.Full())
		assert.True(t, b.IsOccupied(tetris.Cell{Row: 0, Col: 0}))
	})

	t.Run("view lookups", func(t *testing.T) {
		b := tetris.NewBoard()
		occupyCell(b, tetris.Cell{Row: 1, Col: 1}, tetris.LockedBy(tetris.TBlock))
		v := b.View()
		assert.Equal(t, tetris.LockedBy(tetris.TBlock), v.At(tetris.Cell{Row: 1, Col: 1}))
		assert.Equal(t, tetris.Vacant, v.At(tetris.Cell{Row: 1, Col: 2}))
		assert.Equal(t, tetris.Border, v.At(tetris.Cell{Row: 0, Col: 1}))
	})
}
