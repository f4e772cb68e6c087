package tetris

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Counters tally what happened during one game.
type Counters struct {
	Commands          int64
	GravitySteps      int64
	Kicks             int64
	RejectedMoves     int64
	RejectedRotations int64
	Locks             int64
	Lines             int64
}

// Game owns the whole simulation state of one game: board, active and
// preview pieces, counters and phase. It has no notion of time; a
// Controller (or a test) decides when gravity applies.
type Game struct {
	id      uuid.UUID
	level   Level
	board   *Board
	active  *Piece
	next    Variant
	hasNext bool
	stats   Stats
	phase   Phase
	aborted bool
	pieces  int

	counters Counters

	rand Randomizer
	sink Sink
	base zerolog.Logger
	log  zerolog.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLevel sets the game level. Invalid levels panic on use.
func WithLevel(l Level) Option {
	return func(g *Game) { g.level = l }
}

// WithRandomizer replaces the default uniform randomizer.
func WithRandomizer(r Randomizer) Option {
	return func(g *Game) { g.rand = r }
}

// WithSink sets the render sink.
func WithSink(s Sink) Option {
	return func(g *Game) { g.sink = s }
}

// WithLogger sets the logger. Each game adds its id to the context.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.base = l }
}

// NewGame creates a game. Call Start before issuing commands.
func NewGame(opts ...Option) *Game {
	g := &Game{
		level: DefaultLevel,
		board: NewBoard(),
		phase: GameOver,
		sink:  NopSink{},
		base:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rand == nil {
		g.rand = NewUniform(uint64(uuid.New().ID()))
	}
	g.log = g.base
	return g
}

// Start resets the board and current-game counters and spawns the first
// piece. The preview piece carries over when a game is restarted.
func (g *Game) Start() {
	g.id = uuid.New()
	g.log = g.base.With().Str("game", g.id.String()).Logger()
	g.board.Reset()
	g.active = nil
	g.stats = Stats{}
	g.counters = Counters{}
	g.pieces = 0
	g.aborted = false
	g.log.Info().Int("level", int(g.level)).Msg("game started")
	g.sink.GameStarted(g.ID(), g.level)
	g.sink.StatsChanged(g.stats)
	g.spawn()
}

func (g *Game) ID() string         { return g.id.String() }
func (g *Game) Level() Level       { return g.level }
func (g *Game) Phase() Phase       { return g.phase }
func (g *Game) Board() *Board      { return g.board }
func (g *Game) Stats() Stats       { return g.stats }
func (g *Game) Counters() Counters { return g.counters }
func (g *Game) Pieces() int        { return g.pieces }

// Active returns the falling piece, or nil outside the Falling phase.
func (g *Game) Active() *Piece { return g.active }

// Next returns the preview variant.
func (g *Game) Next() Variant { return g.next }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.phase == GameOver }

// Aborted reports whether the game ended through Abort.
func (g *Game) Aborted() bool { return g.aborted }

// Apply runs one player command against the active piece. Quit and None
// are not piece operations and are rejected; use Abort to quit.
func (g *Game) Apply(cmd Command) Outcome {
	if g.phase != Falling {
		return Rejected
	}
	g.counters.Commands++
	switch cmd {
	case MoveLeft:
		return g.translate(DirLeft)
	case MoveRight:
		return g.translate(DirRight)
	case Rotate:
		return g.rotate()
	case SoftDrop:
		return g.step()
	case HardDrop:
		return g.HardDrop()
	}
	return Rejected
}

// Gravity performs the timed step down.
func (g *Game) Gravity() Outcome {
	if g.phase != Falling {
		return Rejected
	}
	g.counters.GravitySteps++
	return g.step()
}

// HardDrop steps the active piece down until it locks.
func (g *Game) HardDrop() Outcome {
	if g.phase != Falling {
		return Rejected
	}
	for g.active.StepDown(g.board) != Locked {
	}
	g.sink.PieceMoved(g.active.View())
	g.lock()
	return Locked
}

// Abort ends the game immediately without crediting the lifetime record.
func (g *Game) Abort() {
	if g.phase == GameOver {
		return
	}
	g.log.Info().Msg("game aborted")
	g.active = nil
	g.aborted = true
	g.phase = GameOver
}

// Summary describes the game so far.
func (g *Game) Summary() GameSummary {
	return GameSummary{
		GameID: g.id.String(),
		Level:  g.level,
		Stats:  g.stats,
		Pieces: g.pieces,
	}
}

// Conclude credits a finished game to the lifetime record held by store
// and notifies the sink. A record that cannot be loaded is treated as
// empty; a failed save is returned after the sink has been notified.
func (g *Game) Conclude(ctx context.Context, store StatsStore) (GameSummary, error) {
	summary := g.Summary()
	credit := func(l *Lifetime) {
		summary.NewBest = l.Record(g.stats)
		summary.Lifetime = *l
	}

	var saveErr error
	if u, ok := store.(LifetimeUpdater); ok {
		saveErr = u.UpdateLifetime(ctx, credit)
	} else {
		saveErr = g.loadAndSave(ctx, store, credit)
	}
	if rec, ok := store.(GameRecorder); ok {
		if err := rec.RecordGame(ctx, summary); err != nil {
			g.log.Warn().Err(err).Msg("game history not recorded")
		}
	}
	g.log.Info().
		Uint("score", g.stats.Score).
		Uint("lines", g.stats.LinesCleared).
		Int("pieces", g.pieces).
		Bool("new_best", summary.NewBest).
		Msg("game over")
	g.sink.GameOver(summary)
	if saveErr != nil {
		return summary, fmt.Errorf("save lifetime stats: %w", saveErr)
	}
	return summary, nil
}

func (g *Game) loadAndSave(ctx context.Context, store StatsStore, credit func(l *Lifetime)) error {
	lifetime, err := store.Load(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("lifetime stats unavailable, starting fresh")
		lifetime = Lifetime{}
	}
	credit(&lifetime)
	return store.Save(ctx, lifetime)
}

func (g *Game) translate(dir Direction) Outcome {
	out := g.active.Translate(g.board, dir)
	if out.Committed() {
		g.sink.PieceMoved(g.active.View())
	} else {
		g.counters.RejectedMoves++
	}
	return out
}

func (g *Game) rotate() Outcome {
	out := g.active.Rotate(g.board)
	switch out {
	case Kicked:
		g.counters.Kicks++
		g.sink.PieceMoved(g.active.View())
	case Moved:
		g.sink.PieceMoved(g.active.View())
	default:
		g.counters.RejectedRotations++
	}
	return out
}

func (g *Game) step() Outcome {
	out := g.active.StepDown(g.board)
	if out == Locked {
		g.lock()
		return out
	}
	g.sink.PieceMoved(g.active.View())
	return out
}

func (g *Game) lock() {
	g.phase = Locking
	p := g.active
	cells := p.Cells()
	g.board.Occupy(cells, LockedBy(p.variant))
	g.active = nil
	g.counters.Locks++
	g.sink.PieceLocked(p.View())
	g.log.Debug().Stringer("variant", p.variant).Stringer("anchor", p.anchor).Msg("piece locked")

	g.phase = LineClearing
	cleared := ClearLines(g.board, cells, &g.stats, func(row int) {
		g.sink.RowCleared(row, g.board.View())
	})
	if len(cleared) > 0 {
		g.counters.Lines += int64(len(cleared))
		g.log.Debug().Ints("rows", cleared).Uint("score", g.stats.Score).Msg("lines cleared")
		g.sink.StatsChanged(g.stats)
	}
	g.spawn()
}

func (g *Game) spawn() {
	g.phase = Spawning
	if g.board.Full() {
		g.phase = GameOver
		return
	}

	v := g.next
	if !g.hasNext {
		v = g.rand.Next()
	}
	g.next = g.rand.Next()
	g.hasNext = true
	g.sink.NextChanged(g.next)

	p := NewPiece(v)
	if _, blocked := collisions(g.board, p.Cells()); blocked {
		g.board.MarkFull()
		g.phase = GameOver
		return
	}
	g.active = p
	g.pieces++
	g.phase = Falling
	g.sink.PieceMoved(p.View())
}
