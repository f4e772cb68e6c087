package tetris_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestClearLines(t *testing.T) {
	t.Run("nothing complete", func(t *testing.T) {
		b := tetris.NewBoard()
		locked := tetris.Place(tetris.Square, tetris.Up, tetris.Cell{Row: 19, Col: 1})
		b.Occupy(locked, tetris.LockedBy(tetris.Square))
		var stats tetris.Stats

		assert.Empty(t, tetris.ClearLines(b, locked, &stats, nil))
		assert.Equal(t, tetris.Stats{}, stats)
		assert.Equal(t, 4, b.LockedCount())
	})

	t.Run("single line", func(t *testing.T) {
		b := tetris.NewBoard()
		fillRow(b, 20, 5, 6)
		locked := tetris.Place(tetris.Square, tetris.Up, tetris.Cell{Row: 19, Col: 5})
		b.Occupy(locked, tetris.LockedBy(tetris.Square))
		var stats tetris.Stats

		cleared := tetris.ClearLines(b, locked, &stats, nil)

		assert.Equal(t, []int{20}, cleared)
		assert.Equal(t, tetris.Stats{Score: 3, LinesCleared: 1}, stats)

		var want tetris.BoardView
		want[19][4] = tetris.LockedBy(tetris.Square)
		want[19][5] = tetris.LockedBy(tetris.Square)
		if diff := cmp.Diff(want, b.View()); diff != "" {
			t.Errorf("board after clear (-want +got):\n%s", diff)
		}
	})

	t.Run("double line scores with the running total", func(t *testing.T) {
		b := tetris.NewBoard()
		fillRow(b, 19, 1, 2)
		fillRow(b, 20, 1, 2)
		occupyCell(b, tetris.Cell{Row: 18, Col: 7}, tetris.LockedBy(tetris.ZBlock))
		locked := tetris.Place(tetris.Square, tetris.Up, tetris.Cell{Row: 19, Col: 1})
		b.Occupy(locked, tetris.LockedBy(tetris.Square))

		const before = 5
		stats := tetris.Stats{Score: 40, LinesCleared: before}
		var seen []int
		cleared := tetris.ClearLines(b, locked, &stats, func(row int) { seen = append(seen, row) })

		assert.Equal(t, []int{19, 20}, cleared)
		assert.Equal(t, cleared, seen)
		assert.Equal(t, uint(before+2), stats.LinesCleared)
		assert.Equal(t, uint(40+3*(before+1)+3*(before+2)), stats.Score)

		assert.Equal(t, 1, b.LockedCount())
		assert.Equal(t, tetris.LockedBy(tetris.ZBlock), b.At(tetris.Cell{Row: 20, Col: 7}))
	})

	t.Run("four lines from a vertical chord", func(t *testing.T) {
		b := tetris.NewBoard()
		for row := 17; row <= 20; row++ {
			fillRow(b, row, 10)
		}
		locked := tetris.Place(tetris.Chord, tetris.Right, tetris.Cell{Row: 17, Col: 10})
		b.Occupy(locked, tetris.LockedBy(tetris.Chord))
		var stats tetris.Stats

		cleared := tetris.ClearLines(b, locked, &stats, nil)

		assert.Equal(t, []int{17, 18, 19, 20}, cleared)
		assert.Equal(t, tetris.Stats{Score: 3 + 6 + 9 + 12, LinesCleared: 4}, stats)
		assert.Equal(t, 0, b.LockedCount())
	})
}
