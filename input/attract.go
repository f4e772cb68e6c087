package input

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/tetris"
)

var attractMoves = []tetris.Command{tetris.MoveLeft, tetris.MoveRight, tetris.Rotate, tetris.HardDrop}

// Attract plays by itself: on every tick it sends a soft drop or, half of
// the time, a random move.
type Attract struct {
	ch       chan tetris.Command
	interval time.Duration
	rng      *rand.Rand
}

// NewAttract creates a demo player that acts every interval.
func NewAttract(interval time.Duration, seed uint64) *Attract {
	return &Attract{
		ch:       make(chan tetris.Command),
		interval: interval,
		rng:      rand.New(rand.NewPCG(seed, seed+1)),
	}
}

func (a *Attract) Commands() <-chan tetris.Command {
	return a.ch
}

// Next picks the next command.
func (a *Attract) Next() tetris.Command {
	if a.rng.Float32() < 0.5 {
		return attractMoves[a.rng.IntN(len(attractMoves))]
	}
	return tetris.SoftDrop
}

// Run sends commands until ctx is done, then closes the stream.
func (a *Attract) Run(ctx context.Context) {
	defer close(a.ch)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case a.ch <- a.Next():
			case <-ctx.Done():
				return
			}
		}
	}
}
