// Package store persists the lifetime statistics record between games.
package store

import (
	"context"
	"errors"

	"github.com/plus3/blockfall/tetris"
)

// ErrMalformedRecord is reported when a stored record cannot be parsed.
var ErrMalformedRecord = errors.New("malformed lifetime record")

// Store is a tetris.StatsStore that can also wipe its record.
type Store interface {
	tetris.StatsStore
	// Reset sets every lifetime value back to zero.
	Reset(ctx context.Context) error
	Close() error
}
