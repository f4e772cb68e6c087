package tetris

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidLevel is returned for levels outside 1..MaxLevel.
var ErrInvalidLevel = errors.New("invalid level")

// Level selects the gravity delay for a whole game.
type Level int

const (
	MinLevel     Level = 1
	MaxLevel     Level = 6
	DefaultLevel Level = 2
)

var gravityDelays = [...]time.Duration{
	1: 1500 * time.Millisecond,
	2: 1000 * time.Millisecond,
	3: 800 * time.Millisecond,
	4: 500 * time.Millisecond,
	5: 300 * time.Millisecond,
	6: 100 * time.Millisecond,
}

// Valid reports whether l is a playable level.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// GravityDelay is the time between automatic step-downs at level l.
func (l Level) GravityDelay() time.Duration {
	if !l.Valid() {
		panic(fmt.Sprintf("tetris: no gravity delay for level %d", l))
	}
	return gravityDelays[l]
}

// ParseLevel parses a decimal level number.
func ParseLevel(s string) (Level, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
	}
	return l, nil
}
