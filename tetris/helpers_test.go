package tetris_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/plus3/blockfall/tetris"
)

func occupyCell(b *tetris.Board, c tetris.Cell, o tetris.Occupant) {
	b.OccupyCell(c, o)
}

// fillRow occupies every interior column of row except the listed ones.
func fillRow(b *tetris.Board, row int, except ...int) {
	skip := map[int]bool{}
	for _, col := range except {
		skip[col] = true
	}
	for col := 1; col <= tetris.Width; col++ {
		if !skip[col] {
			occupyCell(b, tetris.Cell{Row: row, Col: col}, tetris.LockedBy(tetris.TBlock))
		}
	}
}

func newGame(vs ...tetris.Variant) *tetris.Game {
	g := tetris.NewGame(tetris.WithRandomizer(tetris.NewSequence(vs...)))
	g.Start()
	return g
}

type recordingSink struct {
	started []string
	moved   []tetris.PieceView
	locked  []tetris.PieceView
	cleared []int
	next    []tetris.Variant
	stats   []tetris.Stats
	over    []tetris.GameSummary
	board   tetris.BoardView
}

func (s *recordingSink) PieceMoved(p tetris.PieceView)  { s.moved = append(s.moved, p) }
func (s *recordingSink) PieceLocked(p tetris.PieceView) { s.locked = append(s.locked, p) }
func (s *recordingSink) NextChanged(v tetris.Variant)   { s.next = append(s.next, v) }
func (s *recordingSink) StatsChanged(st tetris.Stats)   { s.stats = append(s.stats, st) }
func (s *recordingSink) GameOver(sum tetris.GameSummary) {
	s.over = append(s.over, sum)
}

func (s *recordingSink) GameStarted(id string, _ tetris.Level) {
	s.started = append(s.started, id)
}

func (s *recordingSink) RowCleared(row int, board tetris.BoardView) {
	s.cleared = append(s.cleared, row)
	s.board = board
}

type memoryStore struct {
	lifetime tetris.Lifetime
	loadErr  error
	saveErr  error
	saves    int
}

func (m *memoryStore) Load(context.Context) (tetris.Lifetime, error) {
	return m.lifetime, m.loadErr
}

func (m *memoryStore) Save(_ context.Context, l tetris.Lifetime) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.lifetime = l
	return nil
}

var errUseUpdate = errors.New("use UpdateLifetime")

// updatingStore only supports atomic updates; Load and Save fail.
type updatingStore struct {
	mu       sync.Mutex
	lifetime tetris.Lifetime
	updates  int
}

func (u *updatingStore) Load(context.Context) (tetris.Lifetime, error) {
	return tetris.Lifetime{}, errUseUpdate
}

func (u *updatingStore) Save(context.Context, tetris.Lifetime) error {
	return errUseUpdate
}

func (u *updatingStore) UpdateLifetime(_ context.Context, fn func(l *tetris.Lifetime)) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	l := u.lifetime
	time.Sleep(time.Millisecond)
	fn(&l)
	u.lifetime = l
	u.updates++
	return nil
}
