package tetris

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Session plays games back to back on one input source until the player
// quits, the context ends, or a game limit is reached.
type Session struct {
	newGame  func() *Game
	input    InputSource
	store    StatsStore
	opts     []ControllerOption
	maxGames int
	log      zerolog.Logger
	after    afterFunc

	mu      sync.Mutex
	current *Controller
	results []Result
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMaxGames stops the session after n games. Zero means no limit.
func WithMaxGames(n int) SessionOption {
	return func(s *Session) { s.maxGames = n }
}

// WithControllerOptions applies opts to every game's controller.
func WithControllerOptions(opts ...ControllerOption) SessionOption {
	return func(s *Session) { s.opts = append(s.opts, opts...) }
}

// WithSessionLogger sets the session's logger.
func WithSessionLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession creates a session that builds each game with newGame.
func NewSession(newGame func() *Game, input InputSource, store StatsStore, opts ...SessionOption) *Session {
	s := &Session{
		newGame: newGame,
		input:   input,
		store:   store,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays until a game ends without a game over or fails to persist its
// stats. It returns every game's result in order.
func (s *Session) Run(ctx context.Context) ([]Result, error) {
	for n := 0; s.maxGames == 0 || n < s.maxGames; n++ {
		c := NewController(s.newGame(), s.input, s.store, s.opts...)
		if s.after != nil {
			c.after = s.after
		}
		s.mu.Lock()
		s.current = c
		s.mu.Unlock()

		res, err := c.Run(ctx)
		s.mu.Lock()
		s.results = append(s.results, res)
		s.mu.Unlock()
		if err != nil {
			return s.Results(), err
		}
		s.log.Info().
			Str("game", res.Summary.GameID).
			Stringer("reason", res.Reason).
			Uint("score", res.Summary.Stats.Score).
			Msg("game finished")
		if res.Reason != EndGameOver || res.Quit {
			break
		}
	}
	return s.Results(), nil
}

// Controller returns the controller of the game in progress, or nil before
// the first game starts.
func (s *Session) Controller() *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Stats returns the live statistics of the game in progress.
func (s *Session) Stats() ControllerStats {
	if c := s.Controller(); c != nil {
		return c.Stats()
	}
	return ControllerStats{}
}

// Results returns the results of the games finished so far.
func (s *Session) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Result(nil), s.results...)
}
