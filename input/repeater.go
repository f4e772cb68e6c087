package input

import (
	"time"

	"github.com/plus3/blockfall/tetris"
	"golang.org/x/time/rate"
)

// Repeater turns held keys into a throttled command stream. The first frame
// a key is held sends at once; holding it repeats at most once per interval.
type Repeater struct {
	*Channel
	every time.Duration
	held  map[tetris.Command]*rate.Limiter
}

// NewRepeater creates a repeater sending into a queue of the given size.
func NewRepeater(every time.Duration, size int) *Repeater {
	return &Repeater{
		Channel: NewChannel(size),
		every:   every,
		held:    make(map[tetris.Command]*rate.Limiter),
	}
}

// Hold reports that the key for cmd is down at now.
func (r *Repeater) Hold(cmd tetris.Command, now time.Time) bool {
	lim, ok := r.held[cmd]
	if !ok {
		lim = rate.NewLimiter(rate.Every(r.every), 1)
		r.held[cmd] = lim
	}
	if !lim.AllowN(now, 1) {
		return false
	}
	return r.Send(cmd)
}

// Release reports that the key for cmd went up, so the next Hold sends
// immediately.
func (r *Repeater) Release(cmd tetris.Command) {
	delete(r.held, cmd)
}

// Press sends an edge-triggered command that never repeats.
func (r *Repeater) Press(cmd tetris.Command) bool {
	return r.Send(cmd)
}
