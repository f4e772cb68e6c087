// Package tetris implements the falling-block simulation: the piece geometry
// and kick tables, the bordered board, collision resolution, line clearing,
// statistics and the drop/lock state machine that drives a single game.
package tetris

import "fmt"

//go:generate go tool stringer -type=Variant,Rotation -output=geometry_string.go

// Variant identifies one of the seven piece shapes.
type Variant uint8

const (
	Chord Variant = iota
	Square
	TBlock
	LBlock
	JBlock
	ZBlock
	SBlock
)

// VariantCount is the number of piece variants.
const VariantCount = 7

// Variants returns every variant in declaration order.
func Variants() []Variant {
	return []Variant{Chord, Square, TBlock, LBlock, JBlock, ZBlock, SBlock}
}

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	return v < VariantCount
}

// Rotation is the orientation of a piece. Rotating advances cyclically
// Up -> Right -> Down -> Left -> Up.
type Rotation uint8

const (
	Up Rotation = iota
	Right
	Down
	Left
)

// Next returns the rotation state a variant enters when rotated from r.
// The square has a single effective state and always stays Up.
func (r Rotation) Next(v Variant) Rotation {
	if v == Square {
		return Up
	}
	return (r + 1) % 4
}

// Cell is a (row, column) grid coordinate, also used for relative offsets.
// Rows grow downward and columns grow rightward.
type Cell struct {
	Row int
	Col int
}

// Add returns the component-wise sum of c and o.
func (c Cell) Add(o Cell) Cell {
	return Cell{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Shape is the four cells of a piece, in a fixed per-variant order.
// The order matters: kick rules and line checks address cells by index.
type Shape [4]Cell

type geometry struct {
	spawnCol int
	shapes   [4]Shape
	// entry[r] is the anchor shift applied when rotating into state r.
	entry [4]Cell
}

var (
	chordFlat = Shape{{0, 0}, {0, 1}, {0, 2}, {0, 3}}
	chordTall = Shape{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	squareAll = Shape{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	zFlat     = Shape{{0, 0}, {0, 1}, {1, 1}, {1, 2}}
	zTall     = Shape{{0, 0}, {1, -1}, {1, 0}, {2, -1}}
	sFlat     = Shape{{0, 0}, {0, 1}, {1, -1}, {1, 0}}
	sTall     = Shape{{0, 0}, {1, 0}, {1, 1}, {2, 1}}
)

var geometries = [VariantCount]geometry{
	Chord: {
		spawnCol: 4,
		shapes:   [4]Shape{chordFlat, chordTall, chordFlat, chordTall},
		entry:    [4]Cell{Up: {2, -1}, Right: {-1, 1}, Down: {1, -2}, Left: {-2, 2}},
	},
	Square: {
		spawnCol: 5,
		shapes:   [4]Shape{squareAll, squareAll, squareAll, squareAll},
	},
	TBlock: {
		spawnCol: 5,
		shapes: [4]Shape{
			Up:    {{0, 0}, {0, 1}, {0, 2}, {1, 1}},
			Right: {{0, 0}, {1, -1}, {1, 0}, {2, 0}},
			Down:  {{0, 0}, {1, -1}, {1, 0}, {1, 1}},
			Left:  {{0, 0}, {1, 0}, {1, 1}, {2, 0}},
		},
		entry: [4]Cell{Up: {1, -1}, Right: {-1, 1}},
	},
	LBlock: {
		spawnCol: 5,
		shapes: [4]Shape{
			Up:    {{0, 0}, {0, 1}, {0, 2}, {1, 0}},
			Right: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
			Down:  {{0, 0}, {1, -2}, {1, -1}, {1, 0}},
			Left:  {{0, 0}, {1, 0}, {2, 0}, {2, 1}},
		},
		entry: [4]Cell{Up: {1, -1}, Right: {-1, 0}, Down: {0, 2}, Left: {0, -1}},
	},
	JBlock: {
		spawnCol: 5,
		shapes: [4]Shape{
			Up:    {{0, 0}, {0, 1}, {0, 2}, {1, 2}},
			Right: {{0, 0}, {1, 0}, {2, -1}, {2, 0}},
			Down:  {{0, 0}, {1, 0}, {1, 1}, {1, 2}},
			Left:  {{0, 0}, {0, 1}, {1, 0}, {2, 0}},
		},
		entry: [4]Cell{Up: {1, -1}, Right: {-1, 1}, Down: {0, -1}, Left: {0, 1}},
	},
	ZBlock: {
		spawnCol: 5,
		shapes:   [4]Shape{zFlat, zTall, zFlat, zTall},
		entry:    [4]Cell{Up: {1, -2}, Right: {-1, 1}, Down: {0, -1}, Left: {0, 2}},
	},
	SBlock: {
		spawnCol: 6,
		shapes:   [4]Shape{sFlat, sTall, sFlat, sTall},
		entry:    [4]Cell{Up: {1, 0}, Right: {-1, -1}, Down: {0, 1}},
	},
}

func lookup(v Variant) *geometry {
	if !v.Valid() {
		panic(fmt.Sprintf("tetris: no geometry for variant %d", v))
	}
	return &geometries[v]
}

// Offsets returns the four relative cell offsets of v in rotation state r.
// The square ignores r.
func Offsets(v Variant, r Rotation) Shape {
	g := lookup(v)
	if r > Left {
		panic(fmt.Sprintf("tetris: no geometry for %s in rotation %d", v, r))
	}
	if v == Square {
		r = Up
	}
	return g.shapes[r]
}

// EntryShift returns the anchor correction applied when v rotates into r.
func EntryShift(v Variant, r Rotation) Cell {
	if v == Square {
		return Cell{}
	}
	return lookup(v).entry[r]
}

// SpawnAnchor is the anchor a new piece of variant v is created at.
func SpawnAnchor(v Variant) Cell {
	return Cell{Row: SpawnRow, Col: lookup(v).spawnCol}
}

// Place returns the absolute cells of v in state r anchored at anchor.
func Place(v Variant, r Rotation, anchor Cell) Shape {
	var out Shape
	for i, off := range Offsets(v, r) {
		out[i] = anchor.Add(off)
	}
	return out
}
