// Package ui holds what the blockfall front ends share: a render sink that
// keeps the latest frame and the palette and layout helpers built on it.
package ui

import (
	"sync"

	"github.com/plus3/blockfall/tetris"
)

// Frame is everything a front end needs to draw one picture of the game.
type Frame struct {
	GameID    string
	Level     tetris.Level
	Board     tetris.BoardView
	Active    tetris.PieceView
	HasActive bool
	Next      tetris.Variant
	HasNext   bool
	Stats     tetris.Stats
	Over      bool
	Summary   tetris.GameSummary
	// Cleared lists the rows removed by the most recent lock.
	Cleared []int
}

// Recorder is a tetris.Sink that folds events into a Frame. It is safe to
// read from a render goroutine while a controller writes to it.
type Recorder struct {
	mu       sync.Mutex
	frame    Frame
	onChange func(Frame)
}

// NewRecorder creates a recorder. onChange, if not nil, is called with a
// copy of the frame after every event, outside the recorder's lock.
func NewRecorder(onChange func(Frame)) *Recorder {
	return &Recorder{onChange: onChange}
}

// Frame returns a copy of the current frame.
func (r *Recorder) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyLocked()
}

func (r *Recorder) copyLocked() Frame {
	f := r.frame
	f.Cleared = append([]int(nil), r.frame.Cleared...)
	return f
}

func (r *Recorder) update(fn func(f *Frame)) {
	r.mu.Lock()
	fn(&r.frame)
	f := r.copyLocked()
	r.mu.Unlock()
	if r.onChange != nil {
		r.onChange(f)
	}
}

func (r *Recorder) GameStarted(id string, level tetris.Level) {
	r.update(func(f *Frame) {
		*f = Frame{GameID: id, Level: level}
	})
}

func (r *Recorder) PieceMoved(p tetris.PieceView) {
	r.update(func(f *Frame) {
		f.Active = p
		f.HasActive = true
	})
}

func (r *Recorder) PieceLocked(p tetris.PieceView) {
	r.update(func(f *Frame) {
		for _, c := range p.Cells {
			if c.Row >= 1 && c.Row <= tetris.Height && c.Col >= 1 && c.Col <= tetris.Width {
				f.Board[c.Row-1][c.Col-1] = tetris.LockedBy(p.Variant)
			}
		}
		f.HasActive = false
		f.Cleared = f.Cleared[:0]
	})
}

func (r *Recorder) RowCleared(row int, board tetris.BoardView) {
	r.update(func(f *Frame) {
		f.Board = board
		f.Cleared = append(f.Cleared, row)
	})
}

func (r *Recorder) NextChanged(v tetris.Variant) {
	r.update(func(f *Frame) {
		f.Next = v
		f.HasNext = true
	})
}

func (r *Recorder) StatsChanged(s tetris.Stats) {
	r.update(func(f *Frame) { f.Stats = s })
}

func (r *Recorder) GameOver(s tetris.GameSummary) {
	r.update(func(f *Frame) {
		f.Over = true
		f.HasActive = false
		f.Summary = s
	})
}

// Ghost returns where the active piece would come to rest if dropped now.
func (f *Frame) Ghost() (tetris.Shape, bool) {
	if !f.HasActive {
		return tetris.Shape{}, false
	}
	cells := f.Active.Cells
	for {
		next := cells
		for i := range next {
			next[i].Row++
		}
		for _, c := range next {
			if f.Board.At(c) != tetris.Vacant {
				return cells, true
			}
		}
		cells = next
	}
}
