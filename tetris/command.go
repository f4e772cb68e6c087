package tetris

//go:generate go tool stringer -type=Command,Phase -output=command_string.go

// Command is a player instruction consumed by the game loop.
type Command uint8

const (
	None Command = iota
	MoveLeft
	MoveRight
	Rotate
	SoftDrop
	HardDrop
	Quit
)

// Phase is the state of the drop/lock state machine.
type Phase uint8

const (
	Spawning Phase = iota
	Falling
	Locking
	LineClearing
	GameOver
)
