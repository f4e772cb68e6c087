package tetris_test

import (
	"context"
	"fmt"

	"github.com/plus3/blockfall/tetris"
)

func ExampleGame() {
	g := tetris.NewGame(tetris.WithRandomizer(tetris.NewSequence(tetris.TBlock, tetris.Chord)))
	g.Start()

	fmt.Println(g.Active().Variant(), g.Active().Cells())
	g.Apply(tetris.MoveLeft)
	g.Apply(tetris.Rotate)
	fmt.Println(g.Active().Rotation(), g.Active().Cells())
	g.Apply(tetris.HardDrop)
	fmt.Println("next:", g.Active().Variant(), "locked cells:", g.Board().LockedCount())

	// Output:
	// TBlock [(1,5) (1,6) (1,7) (2,6)]
	// Right [(1,5) (2,4) (2,5) (3,5)]
	// next: Chord locked cells: 4
}

type printSink struct {
	tetris.NopSink
}

func (printSink) RowCleared(row int, _ tetris.BoardView) {
	fmt.Println("cleared row", row)
}

func (printSink) StatsChanged(s tetris.Stats) {
	fmt.Printf("score %d lines %d\n", s.Score, s.LinesCleared)
}

func ExampleSink() {
	g := tetris.NewGame(
		tetris.WithRandomizer(tetris.NewSequence(tetris.Square)),
		tetris.WithSink(printSink{}),
	)
	g.Start()
	for col := 1; col <= tetris.Width; col++ {
		if col != 5 && col != 6 {
			cell := tetris.Cell{Row: tetris.Height, Col: col}
			g.Board().Occupy(tetris.Shape{cell, cell, cell, cell}, tetris.LockedBy(tetris.JBlock))
		}
	}
	g.Apply(tetris.HardDrop)

	// Output:
	// score 0 lines 0
	// cleared row 20
	// score 3 lines 1
}

func ExampleController() {
	cmds := make(chan tetris.Command, 2)
	cmds <- tetris.HardDrop
	cmds <- tetris.Quit

	g := tetris.NewGame(tetris.WithRandomizer(tetris.NewSequence(tetris.Chord)))
	c := tetris.NewController(g, channelInput(cmds), discardStore{})
	res, err := c.Run(context.Background())

	fmt.Println(res.Reason, err, c.Stats().Counters.Locks)
	// Output: quit <nil> 1
}

type channelInput chan tetris.Command

func (c channelInput) Commands() <-chan tetris.Command { return c }

type discardStore struct{}

func (discardStore) Load(context.Context) (tetris.Lifetime, error) { return tetris.Lifetime{}, nil }
func (discardStore) Save(context.Context, tetris.Lifetime) error   { return nil }
