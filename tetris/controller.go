package tetris

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EndReason says why Controller.Run returned.
type EndReason uint8

const (
	EndGameOver EndReason = iota
	EndQuit
	EndCancelled
)

func (r EndReason) String() string {
	switch r {
	case EndGameOver:
		return "game over"
	case EndQuit:
		return "quit"
	case EndCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Result is returned by Controller.Run.
type Result struct {
	Reason  EndReason
	Summary GameSummary
	// Quit is set when a Quit arrived after game over, while Run was
	// lingering on the finished board.
	Quit bool
}

// StepStats provides execution statistics for one kind of controller step.
type StepStats struct {
	Name          string
	Count         int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// ControllerStats is a snapshot of a running controller.
type ControllerStats struct {
	GameID   string
	Phase    Phase
	Level    Level
	Stats    Stats
	Counters Counters
	Steps    []StepStats
}

type stepKind int

const (
	stepCommand stepKind = iota
	stepGravity
	stepConclude
	stepKindCount
)

var stepNames = [stepKindCount]string{"command", "gravity", "conclude"}

type stepStatsInternal struct {
	count         int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

// afterFunc arms a one-shot timer and returns its channel and a stop func.
type afterFunc func(d time.Duration) (<-chan time.Time, func())

func realAfter(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTimer(d)
	return t.C, func() { t.Stop() }
}

// Controller drives a Game in real time: it merges the gravity timer with
// the input channel, always serving a pending command before a due tick.
type Controller struct {
	game  *Game
	input InputSource
	store StatsStore
	log   zerolog.Logger
	pause time.Duration
	after afterFunc

	mu       sync.Mutex
	steps    [stepKindCount]stepStatsInternal
	snapshot ControllerStats
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithGameOverPause sets how long Run lingers after a game ends.
func WithGameOverPause(d time.Duration) ControllerOption {
	return func(c *Controller) { c.pause = d }
}

// WithControllerLogger sets the controller's logger.
func WithControllerLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.log = l }
}

// NewController creates a controller for game reading from input and
// crediting finished games to store.
func NewController(game *Game, input InputSource, store StatsStore, opts ...ControllerOption) *Controller {
	c := &Controller{
		game:  game,
		input: input,
		store: store,
		log:   zerolog.Nop(),
		after: realAfter,
	}
	for _, opt := range opts {
		opt(c)
	}
	for i := range c.steps {
		c.steps[i].minDuration = time.Duration(1<<63 - 1)
	}
	return c
}

// Game returns the controlled game.
func (c *Controller) Game() *Game {
	return c.game
}

// Run plays one game from spawn to game over, quit or cancellation. Only a
// game that reaches game over is credited to the lifetime record.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	g := c.game
	g.Start()
	c.publish()
	cmds := c.input.Commands()

	for !g.Over() {
		tick, stop := c.after(g.Level().GravityDelay())
		reason, ended := c.fall(ctx, cmds, tick)
		stop()
		c.publish()
		if ended {
			g.Abort()
			c.log.Info().Stringer("reason", reason).Msg("game ended early")
			return Result{Reason: reason, Summary: g.Summary()}, ctx.Err()
		}
	}

	start := time.Now()
	summary, err := g.Conclude(ctx, c.store)
	c.record(stepConclude, time.Since(start))
	c.publish()

	quit := false
	if c.pause > 0 {
		wait, stop := c.after(c.pause)
		quit = c.linger(ctx, cmds, wait)
		stop()
	}
	// Keys buffered behind the game over belong to this game, not the next.
	if c.drain(cmds) {
		quit = true
	}
	return Result{Reason: EndGameOver, Summary: summary, Quit: quit}, err
}

// linger discards commands until wait fires, ctx ends or a Quit arrives.
func (c *Controller) linger(ctx context.Context, cmds <-chan Command, wait <-chan time.Time) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-wait:
			return false
		case cmd, ok := <-cmds:
			if !ok || cmd == Quit {
				return true
			}
		}
	}
}

// drain discards every command already pending, reporting whether one of
// them was a Quit or the input was closed.
func (c *Controller) drain(cmds <-chan Command) bool {
	for {
		select {
		case cmd, ok := <-cmds:
			if !ok || cmd == Quit {
				return true
			}
		default:
			return false
		}
	}
}

// fall serves commands until the gravity tick fires or the piece locks.
// It reports ended when the game must stop without a game over.
func (c *Controller) fall(ctx context.Context, cmds <-chan Command, tick <-chan time.Time) (EndReason, bool) {
	for {
		if ctx.Err() != nil {
			return EndCancelled, true
		}

		// Drain a pending command before considering a due tick.
		select {
		case cmd, ok := <-cmds:
			if quit, locked := c.command(cmd, ok); quit {
				return EndQuit, true
			} else if locked {
				return 0, false
			}
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return EndCancelled, true
		case cmd, ok := <-cmds:
			if quit, locked := c.command(cmd, ok); quit {
				return EndQuit, true
			} else if locked {
				return 0, false
			}
		case <-tick:
			start := time.Now()
			c.game.Gravity()
			c.record(stepGravity, time.Since(start))
			return 0, false
		}
	}
}

func (c *Controller) command(cmd Command, ok bool) (quit, locked bool) {
	if !ok || cmd == Quit {
		return true, false
	}
	if cmd == None {
		return false, false
	}
	start := time.Now()
	out := c.game.Apply(cmd)
	c.record(stepCommand, time.Since(start))
	c.publish()
	return false, out == Locked
}

func (c *Controller) record(kind stepKind, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.steps[kind]
	s.count++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// publish copies the game's counters for readers on other goroutines.
func (c *Controller) publish() {
	g := c.game
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.GameID = g.ID()
	c.snapshot.Phase = g.Phase()
	c.snapshot.Level = g.Level()
	c.snapshot.Stats = g.Stats()
	c.snapshot.Counters = g.Counters()
}

// Stats returns a snapshot safe to read while Run is in progress.
func (c *Controller) Stats() ControllerStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.snapshot
	out.Steps = make([]StepStats, len(c.steps))
	for i, internal := range c.steps {
		avg := time.Duration(0)
		minDuration := internal.minDuration
		if internal.count > 0 {
			avg = internal.totalDuration / time.Duration(internal.count)
		} else {
			minDuration = 0
		}
		out.Steps[i] = StepStats{
			Name:          stepNames[i],
			Count:         internal.count,
			MinDuration:   minDuration,
			MaxDuration:   internal.maxDuration,
			AvgDuration:   avg,
			LastDuration:  internal.lastDuration,
			TotalDuration: internal.totalDuration,
		}
	}
	return out
}
