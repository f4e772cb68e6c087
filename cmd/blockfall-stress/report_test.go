package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	r := &Report{Players: 2, Level: tetris.MaxLevel}

	r.Add([]tetris.Result{
		{Reason: tetris.EndGameOver, Summary: tetris.GameSummary{Pieces: 10, Stats: tetris.Stats{Score: 9, LinesCleared: 2}}},
		{Reason: tetris.EndCancelled, Summary: tetris.GameSummary{Pieces: 3}},
	}, tetris.ControllerStats{
		Counters: tetris.Counters{Commands: 5, Locks: 3},
		Steps: []tetris.StepStats{
			{Name: "command", Count: 2, MinDuration: 2 * time.Microsecond, MaxDuration: 6 * time.Microsecond, TotalDuration: 8 * time.Microsecond},
			{Name: "conclude"},
		},
	})
	r.Add([]tetris.Result{
		{Reason: tetris.EndGameOver, Summary: tetris.GameSummary{Pieces: 7, Stats: tetris.Stats{Score: 30, LinesCleared: 4}}},
	}, tetris.ControllerStats{
		Counters: tetris.Counters{Commands: 1},
		Steps: []tetris.StepStats{
			{Name: "command", Count: 2, MinDuration: time.Microsecond, MaxDuration: 3 * time.Microsecond, TotalDuration: 4 * time.Microsecond},
		},
	})
	r.Finalize()

	assert.Equal(t, 3, r.Games)
	assert.Equal(t, 2, r.Finished)
	assert.Equal(t, 20, r.Pieces)
	assert.Equal(t, uint(6), r.Lines)
	assert.Equal(t, uint(30), r.BestScore)
	assert.Equal(t, int64(6), r.Counters.Commands)

	require.Len(t, r.Steps, 2)
	cmd := r.Steps[0]
	assert.Equal(t, "command", cmd.Name)
	assert.Equal(t, int64(4), cmd.Count)
	assert.Equal(t, time.Microsecond, cmd.Min)
	assert.Equal(t, 6*time.Microsecond, cmd.Max)
	assert.Equal(t, 3*time.Microsecond, cmd.Avg)
	assert.Zero(t, r.Steps[1].Count)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "**Games Played:** 3 (2 reached game over)")
	assert.Contains(t, buf.String(), "- **command:** 4 steps, avg 3µs, min 1µs, max 6µs")
	assert.NotContains(t, buf.String(), "GC Pause")
}
