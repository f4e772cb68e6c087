package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, frames)}
}

// Push records one frame's duration.
func (h *FrameHistory) Push(d time.Duration) {
	h.samples[h.index] = float32(d.Seconds() * 1000)
	h.index = (h.index + 1) % len(h.samples)
}

// Average is the mean frame time in milliseconds over the whole ring.
func (h *FrameHistory) Average() float32 {
	var sum float32
	for _, ft := range h.samples {
		sum += ft
	}
	return sum / float32(len(h.samples))
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{lastFrameTime: time.Now()}
}

func (ft *FrameTimer) Delta() time.Duration {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime)
	ft.lastFrameTime = now
	return delta
}

// Panel shows a controller's live statistics in an ImGui window.
type Panel struct {
	stats   func() tetris.ControllerStats
	history *FrameHistory
	timer   *FrameTimer
}

// NewPanel creates a panel that reads from stats every frame.
func NewPanel(stats func() tetris.ControllerStats, historyFrames int) *Panel {
	return &Panel{
		stats:   stats,
		history: NewFrameHistory(historyFrames),
		timer:   NewFrameTimer(),
	}
}

func (p *Panel) Render() {
	p.history.Push(p.timer.Delta())

	if !imgui.BeginV("Blockfall", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := p.stats()
	imgui.Text(fmt.Sprintf("Game: %s", s.GameID))
	imgui.Text(fmt.Sprintf("Phase: %v  Level: %d", s.Phase, s.Level))
	imgui.Text(fmt.Sprintf("Score: %d  Lines: %d", s.Stats.Score, s.Stats.LinesCleared))

	avg := p.history.Average()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &p.history.samples[0], int32(len(p.history.samples)))

	if imgui.TreeNodeStr("Counters") {
		for _, line := range CounterLines(s.Counters) {
			imgui.BulletText(line)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Steps") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("StepTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Step")
			imgui.TableSetupColumn("Count")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, step := range s.Steps {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(step.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", step.Count))
				imgui.TableNextColumn()
				imgui.Text(step.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(step.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(step.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// CounterLines formats c one counter per line.
func CounterLines(c tetris.Counters) []string {
	return []string{
		fmt.Sprintf("Commands: %d", c.Commands),
		fmt.Sprintf("Gravity steps: %d", c.GravitySteps),
		fmt.Sprintf("Kicks: %d", c.Kicks),
		fmt.Sprintf("Rejected moves: %d", c.RejectedMoves),
		fmt.Sprintf("Rejected rotations: %d", c.RejectedRotations),
		fmt.Sprintf("Locks: %d", c.Locks),
		fmt.Sprintf("Lines: %d", c.Lines),
	}
}
