package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	Players        int
	Level          tetris.Level
	InputInterval  time.Duration
	GCPauseMetrics bool

	// Results
	TotalTime     time.Duration
	Games         int
	Finished      int
	Pieces        int
	Lines         uint
	BestScore     uint
	Counters      tetris.Counters
	Steps         []Stats
	Lifetime      tetris.Lifetime
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Stats aggregates one controller step across every game.
type Stats struct {
	Name  string
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Total time.Duration
}

// Add folds one session's finished games and its last controller's step
// timings into the report.
func (r *Report) Add(results []tetris.Result, live tetris.ControllerStats) {
	for _, res := range results {
		r.Games++
		if res.Reason == tetris.EndGameOver {
			r.Finished++
		}
		r.Pieces += res.Summary.Pieces
		r.Lines += res.Summary.Stats.LinesCleared
		r.BestScore = max(r.BestScore, res.Summary.Stats.Score)
	}

	c := live.Counters
	r.Counters.Commands += c.Commands
	r.Counters.GravitySteps += c.GravitySteps
	r.Counters.Kicks += c.Kicks
	r.Counters.RejectedMoves += c.RejectedMoves
	r.Counters.RejectedRotations += c.RejectedRotations
	r.Counters.Locks += c.Locks
	r.Counters.Lines += c.Lines

	for _, step := range live.Steps {
		s := r.step(step.Name)
		if step.Count == 0 {
			continue
		}
		if s.Count == 0 || step.MinDuration < s.Min {
			s.Min = step.MinDuration
		}
		s.Max = max(s.Max, step.MaxDuration)
		s.Count += step.Count
		s.Total += step.TotalDuration
	}
}

func (r *Report) step(name string) *Stats {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			return &r.Steps[i]
		}
	}
	r.Steps = append(r.Steps, Stats{Name: name})
	return &r.Steps[len(r.Steps)-1]
}

func (r *Report) Finalize() {
	for i := range r.Steps {
		s := &r.Steps[i]
		if s.Count > 0 {
			s.Avg = s.Total / time.Duration(s.Count)
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Concurrent Players:** {{.Players}}
- **Level:** {{.Level}}
- **Input Interval:** {{.InputInterval}}

## Games
- **Games Played:** {{.Games}} ({{.Finished}} reached game over)
- **Pieces Locked:** {{.Pieces}}
- **Lines Cleared:** {{.Lines}}
- **Best Score:** {{.BestScore}}
- **Lifetime Record:** {{.Lifetime.GamesPlayed}} games, best {{.Lifetime.HighestScore}} points / {{.Lifetime.HighestLines}} lines

## Counters (last game per player)
- Commands: {{.Counters.Commands}}, gravity steps: {{.Counters.GravitySteps}}
- Kicks: {{.Counters.Kicks}}, rejected rotations: {{.Counters.RejectedRotations}}, rejected moves: {{.Counters.RejectedMoves}}

## Step Timings (last game per player)
{{range .Steps}}- **{{.Name}}:** {{.Count}} steps, avg {{.Avg}}, min {{.Min}}, max {{.Max}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
