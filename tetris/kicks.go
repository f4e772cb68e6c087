package tetris

// cellMask selects piece cells by index; bit i is cell i.
type cellMask uint8

const anyCell cellMask = 0b1111

func cells(idx ...int) cellMask {
	var m cellMask
	for _, i := range idx {
		m |= 1 << i
	}
	return m
}

// kick is a one-shot correction applied to a rotation that collided on any
// of the cells in when.
type kick struct {
	when  cellMask
	shift Cell
}

// kicks[v][r] is the ordered rule list consulted after v rotates into r and
// collides. Only the first matching rule is applied, so rule order matters
// and is not cell index order.
var kicks = [VariantCount][4][]kick{
	Chord: {
		Up:    {{cells(0), Cell{0, 1}}, {cells(2), Cell{0, -2}}, {cells(3), Cell{0, -1}}},
		Right: {{cells(0), Cell{1, 0}}, {cells(2), Cell{-2, 0}}, {cells(3), Cell{-1, 0}}},
		Down:  {{cells(3), Cell{0, -1}}, {cells(1), Cell{0, 2}}, {cells(0), Cell{0, 1}}},
		Left:  {{cells(3), Cell{-1, 0}}, {cells(1), Cell{2, 0}}, {cells(0), Cell{1, 0}}},
	},
	TBlock: {
		Up:    {{anyCell, Cell{0, 1}}},
		Right: {{anyCell, Cell{1, 0}}},
		Down:  {{anyCell, Cell{0, -1}}},
		Left:  {{anyCell, Cell{-1, 0}}},
	},
	LBlock: {
		Up:    {{cells(2), Cell{0, -1}}, {cells(0, 3), Cell{0, 1}}},
		Right: {{cells(3), Cell{-1, 0}}, {cells(0, 1), Cell{1, 0}}},
		Down:  {{cells(1), Cell{0, 1}}, {cells(0, 3), Cell{0, -1}}},
		Left:  {{cells(0), Cell{1, 0}}, {cells(2, 3), Cell{-1, 0}}},
	},
	JBlock: {
		Up:    {{cells(0), Cell{0, 1}}, {cells(2, 3), Cell{0, -1}}},
		Right: {{cells(0), Cell{1, 0}}, {cells(2, 3), Cell{-1, 0}}},
		Down:  {{cells(3), Cell{0, -1}}, {cells(0, 1), Cell{0, 1}}},
		Left:  {{cells(3), Cell{-1, 0}}, {cells(0, 1), Cell{1, 0}}},
	},
	ZBlock: {
		Up:    {{cells(0), Cell{0, 1}}, {cells(3), Cell{0, -1}}},
		Right: {{cells(0), Cell{1, 0}}, {cells(3), Cell{-1, 0}}},
		Down:  {{cells(3), Cell{0, -1}}, {cells(0), Cell{0, 1}}},
		Left:  {{cells(3), Cell{-1, 0}}, {cells(0), Cell{1, 0}}},
	},
	SBlock: {
		Up:    {{cells(3), Cell{0, 2}}, {cells(2), Cell{0, 1}}},
		Right: {{cells(1), Cell{2, 0}}, {cells(0), Cell{1, 0}}},
		Down:  {{cells(0), Cell{0, -2}}, {cells(1), Cell{0, -1}}},
		Left:  {{cells(2), Cell{-2, 0}}, {cells(3), Cell{-1, 0}}},
	},
}

// Kick returns the correction for v having rotated into r with the collided
// cells flagged. ok is false when no rule matches, in which case the
// rotation can only be rejected.
func Kick(v Variant, r Rotation, collided [4]bool) (shift Cell, ok bool) {
	lookup(v)
	var hit cellMask
	for i, c := range collided {
		if c {
			hit |= 1 << i
		}
	}
	if hit == 0 {
		return Cell{}, false
	}
	for _, k := range kicks[v][r] {
		if k.when&hit != 0 {
			return k.shift, true
		}
	}
	return Cell{}, false
}
