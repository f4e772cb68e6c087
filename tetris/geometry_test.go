package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func connected(s tetris.Shape) bool {
	seen := map[tetris.Cell]bool{s[0]: true}
	queue := []tetris.Cell{s[0]}
	members := map[tetris.Cell]bool{}
	for _, c := range s {
		members[c] = true
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range []tetris.Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			n := c.Add(d)
			if members[n] && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == 4
}

func TestGeometry(t *testing.T) {
	t.Run("every shape is four distinct edge-connected cells", func(t *testing.T) {
		for _, v := range tetris.Variants() {
			for r := tetris.Up; r <= tetris.Left; r++ {
				s := tetris.Offsets(v, r)
				distinct := map[tetris.Cell]bool{}
				for _, c := range s {
					distinct[c] = true
				}
				assert.Len(t, distinct, 4, "%s %s", v, r)
				assert.True(t, connected(s), "%s %s", v, r)
				assert.Equal(t, tetris.Cell{}, s[0], "%s %s anchor offset", v, r)
			}
		}
	})

	t.Run("square ignores rotation", func(t *testing.T) {
		up := tetris.Offsets(tetris.Square, tetris.Up)
		for r := tetris.Up; r <= tetris.Left; r++ {
			assert.Equal(t, up, tetris.Offsets(tetris.Square, r))
		}
		assert.Equal(t, tetris.Up, tetris.Up.Next(tetris.Square))
		assert.Equal(t, tetris.Up, tetris.Left.Next(tetris.Square))
	})

	t.Run("rotation cycles", func(t *testing.T) {
		r := tetris.Up
		var seen []tetris.Rotation
		for range 4 {
			r = r.Next(tetris.TBlock)
			seen = append(seen, r)
		}
		assert.Equal(t, []tetris.Rotation{tetris.Right, tetris.Down, tetris.Left, tetris.Up}, seen)
	})

	t.Run("entry shifts cancel over a full turn", func(t *testing.T) {
		for _, v := range tetris.Variants() {
			var sum tetris.Cell
			for r := tetris.Up; r <= tetris.Left; r++ {
				sum = sum.Add(tetris.EntryShift(v, r))
			}
			assert.Equal(t, tetris.Cell{}, sum, "%s", v)
		}
	})

	t.Run("spawn anchors", func(t *testing.T) {
		assert.Equal(t, tetris.Cell{Row: tetris.SpawnRow, Col: 4}, tetris.SpawnAnchor(tetris.Chord))
		assert.Equal(t, tetris.Cell{Row: tetris.SpawnRow, Col: 5}, tetris.SpawnAnchor(tetris.TBlock))
		assert.Equal(t, tetris.Cell{Row: tetris.SpawnRow, Col: 6}, tetris.SpawnAnchor(tetris.SBlock))
	})

	t.Run("place adds the anchor", func(t *testing.T) {
		got := tetris.Place(tetris.Chord, tetris.Up, tetris.Cell{Row: 3, Col: 2})
		assert.Equal(t, tetris.Shape{{3, 2}, {3, 3}, {3, 4}, {3, 5}}, got)
	})

	t.Run("unknown variant panics", func(t *testing.T) {
		assert.Panics(t, func() { tetris.Offsets(tetris.Variant(9), tetris.Up) })
		assert.Panics(t, func() { tetris.Offsets(tetris.TBlock, tetris.Rotation(4)) })
	})

	t.Run("names", func(t *testing.T) {
		assert.Equal(t, "Chord", tetris.Chord.String())
		assert.Equal(t, "SBlock", tetris.SBlock.String())
		assert.Equal(t, "Left", tetris.Left.String())
		assert.Equal(t, "Variant(9)", tetris.Variant(9).String())
	})
}
