package tetris

import "context"

// Sink receives the simulation's output. It knows nothing about colors or
// cursor positions; implementations decide how to draw.
type Sink interface {
	// GameStarted is called when a game begins on an empty board.
	GameStarted(id string, level Level)
	// PieceMoved is called after every committed transform and spawn.
	PieceMoved(p PieceView)
	// PieceLocked is called when a piece merges into the board.
	PieceLocked(p PieceView)
	// RowCleared is called once per cleared row with the compacted board.
	RowCleared(row int, board BoardView)
	// NextChanged announces the preview piece.
	NextChanged(v Variant)
	// StatsChanged is called whenever the current game counters change.
	StatsChanged(s Stats)
	// GameOver is called once when the game ends.
	GameOver(s GameSummary)
}

// NopSink discards everything. Embed it to implement only part of Sink.
type NopSink struct{}

func (NopSink) GameStarted(string, Level) {}
func (NopSink) PieceMoved(PieceView)      {}
func (NopSink) PieceLocked(PieceView)     {}
func (NopSink) RowCleared(int, BoardView) {}
func (NopSink) NextChanged(Variant)       {}
func (NopSink) StatsChanged(Stats)        {}
func (NopSink) GameOver(GameSummary)      {}

// StatsStore persists the lifetime record between games.
type StatsStore interface {
	Load(ctx context.Context) (Lifetime, error)
	Save(ctx context.Context, l Lifetime) error
}

// LifetimeUpdater is implemented by stores that can apply a change to the
// lifetime record atomically. Game.Conclude prefers it over Load and Save,
// so games finishing at the same time on one store all get credited. fn
// may run more than once if the store retries.
type LifetimeUpdater interface {
	UpdateLifetime(ctx context.Context, fn func(l *Lifetime)) error
}

// GameRecorder is implemented by stores that also keep a per-game history.
// Game.Conclude records every finished game in such stores.
type GameRecorder interface {
	RecordGame(ctx context.Context, s GameSummary) error
}

// InputSource delivers player commands. A closed channel means Quit.
type InputSource interface {
	Commands() <-chan Command
}
