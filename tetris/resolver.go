package tetris

type movement uint8

const (
	moveLeft movement = iota
	moveRight
	moveDown
	moveRotate
)

// Outcome is the result of a proposed piece transform.
type Outcome uint8

const (
	// Moved means the transform was committed unchanged.
	Moved Outcome = iota
	// Kicked means a rotation collided and was committed after its kick.
	Kicked
	// Rejected means the transform collided and the piece was rolled back.
	Rejected
	// Locked means a downward step collided; the piece stays at its last
	// valid position and must be merged into the board.
	Locked
)

// Committed reports whether the piece changed position.
func (o Outcome) Committed() bool {
	return o == Moved || o == Kicked
}

func collisions(b *Board, cells Shape) (hit [4]bool, found bool) {
	for i, c := range cells {
		if b.IsOccupied(c) {
			hit[i] = true
			found = true
		}
	}
	return hit, found
}

// resolve tests the piece's proposed position against the board. The piece
// must have stored its pre-move position before proposing.
func resolve(b *Board, p *Piece, kind movement) Outcome {
	hit, collided := collisions(b, p.Cells())
	if !collided {
		return Moved
	}

	switch kind {
	case moveDown:
		p.RestorePosition()
		if p.anchor.Row == SpawnRow {
			b.MarkFull()
		}
		return Locked
	case moveLeft, moveRight:
		p.RestorePosition()
		return Rejected
	case moveRotate:
		shift, ok := Kick(p.variant, p.rotation, hit)
		if ok {
			p.anchor = p.anchor.Add(shift)
			if _, still := collisions(b, p.Cells()); !still {
				return Kicked
			}
		}
		p.RestorePosition()
		return Rejected
	}
	panic("tetris: unknown movement")
}
