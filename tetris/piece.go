package tetris

// Direction is a horizontal translation.
type Direction int

const (
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// Piece is the live, movable instance of a variant. Its cells are always
// derived from the variant geometry and the anchor.
type Piece struct {
	variant  Variant
	rotation Rotation
	anchor   Cell

	saved struct {
		rotation Rotation
		anchor   Cell
	}
}

// NewPiece creates a piece of v at its spawn anchor in rotation Up.
func NewPiece(v Variant) *Piece {
	p := &Piece{variant: v, rotation: Up, anchor: SpawnAnchor(v)}
	p.StoreCurrentPosition()
	return p
}

func (p *Piece) Variant() Variant   { return p.variant }
func (p *Piece) Rotation() Rotation { return p.rotation }
func (p *Piece) Anchor() Cell       { return p.anchor }

// Cells returns the four absolute cells the piece covers.
func (p *Piece) Cells() Shape {
	return Place(p.variant, p.rotation, p.anchor)
}

// View returns an immutable description of the piece for render sinks.
func (p *Piece) View() PieceView {
	return PieceView{Variant: p.variant, Rotation: p.rotation, Cells: p.Cells()}
}

// StoreCurrentPosition records the rotation and anchor that RestorePosition
// rolls back to.
func (p *Piece) StoreCurrentPosition() {
	p.saved.rotation = p.rotation
	p.saved.anchor = p.anchor
}

// RestorePosition rolls back to the last stored position.
func (p *Piece) RestorePosition() {
	p.rotation = p.saved.rotation
	p.anchor = p.saved.anchor
}

// Translate shifts the piece one column. A colliding move leaves the piece
// where it was.
func (p *Piece) Translate(b *Board, dir Direction) Outcome {
	kind := moveRight
	if dir == DirLeft {
		kind = moveLeft
	}
	p.StoreCurrentPosition()
	p.anchor.Col += int(dir)
	return resolve(b, p, kind)
}

// Rotate advances to the next rotation state around the anchor, applying
// the entry shift and, on collision, the state's kick rule.
func (p *Piece) Rotate(b *Board) Outcome {
	p.StoreCurrentPosition()
	p.rotation = p.rotation.Next(p.variant)
	p.anchor = p.anchor.Add(EntryShift(p.variant, p.rotation))
	return resolve(b, p, moveRotate)
}

// StepDown drops the piece one row. A colliding step locks the piece at its
// previous position; the caller merges it into the board.
func (p *Piece) StepDown(b *Board) Outcome {
	p.StoreCurrentPosition()
	p.anchor.Row++
	return resolve(b, p, moveDown)
}

// PieceView is a snapshot of a piece handed to render sinks.
type PieceView struct {
	Variant  Variant
	Rotation Rotation
	Cells    Shape
}
