// Package config holds the settings shared by the blockfall binaries. Values
// come from BLOCKFALL_* environment variables and can be overridden by flags.
package config

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownStore      = errors.New("unknown stats store")
	ErrUnknownRandomizer = errors.New("unknown randomizer")
)

// Store kinds.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Randomizer kinds.
const (
	RandomUniform = "uniform"
	RandomBag     = "bag"
)

type Config struct {
	Level         tetris.Level
	Randomizer    string
	Seed          uint64
	Store         string
	StatsPath     string
	PostgresURL   string
	Profile       string
	LogLevel      string
	GameOverPause time.Duration
	Debug         bool
	ResetStats    bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Level:         tetris.DefaultLevel,
		Randomizer:    RandomUniform,
		Store:         StoreFile,
		StatsPath:     defaultStatsPath(),
		Profile:       store.DefaultProfile,
		LogLevel:      zerolog.LevelInfoValue,
		GameOverPause: 2 * time.Second,
	}
}

func defaultStatsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tetris.dat"
	}
	return filepath.Join(dir, "blockfall", "tetris.dat")
}

// FromEnv returns Default overridden by any BLOCKFALL_* variables that
// getenv reports.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	var errs []error
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	parse := func(key string, set func(string) error) {
		if v := getenv(key); v != "" {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	}

	parse("BLOCKFALL_LEVEL", (*levelFlag)(&c.Level).Set)
	str("BLOCKFALL_RANDOMIZER", &c.Randomizer)
	parse("BLOCKFALL_SEED", func(s string) (err error) {
		c.Seed, err = strconv.ParseUint(s, 10, 64)
		return err
	})
	str("BLOCKFALL_STORE", &c.Store)
	str("BLOCKFALL_STATS_PATH", &c.StatsPath)
	str("BLOCKFALL_POSTGRES_URL", &c.PostgresURL)
	str("BLOCKFALL_PROFILE", &c.Profile)
	str("BLOCKFALL_LOG_LEVEL", &c.LogLevel)
	parse("BLOCKFALL_GAME_OVER_PAUSE", func(s string) (err error) {
		c.GameOverPause, err = time.ParseDuration(s)
		return err
	})
	parse("BLOCKFALL_DEBUG", func(s string) (err error) {
		c.Debug, err = strconv.ParseBool(s)
		return err
	})
	return c, errors.Join(errs...)
}

type levelFlag tetris.Level

func (l *levelFlag) String() string {
	return strconv.Itoa(int(*l))
}

func (l *levelFlag) Set(s string) error {
	v, err := tetris.ParseLevel(s)
	if err != nil {
		return err
	}
	*l = levelFlag(v)
	return nil
}

// Register adds a flag for every setting, using the current values as
// defaults.
func (c *Config) Register(fs *flag.FlagSet) {
	fs.Var((*levelFlag)(&c.Level), "level", "Game level from 1 (slowest) to 6.")
	fs.StringVar(&c.Randomizer, "randomizer", c.Randomizer, "Piece randomizer: uniform or bag.")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Randomizer seed; 0 picks one per run.")
	fs.StringVar(&c.Store, "store", c.Store, "Lifetime stats store: file, memory or postgres.")
	fs.StringVar(&c.StatsPath, "stats-path", c.StatsPath, "Lifetime stats file for the file store.")
	fs.StringVar(&c.PostgresURL, "postgres-url", c.PostgresURL, "Connection string for the postgres store.")
	fs.StringVar(&c.Profile, "profile", c.Profile, "Player profile for the postgres store.")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: trace, debug, info, warn, error or disabled.")
	fs.DurationVar(&c.GameOverPause, "game-over-pause", c.GameOverPause, "How long the final board stays up after a game ends.")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Show the debug overlay.")
	fs.BoolVar(&c.ResetStats, "reset-stats", c.ResetStats, "Zero the lifetime stats before playing.")
}

// NewLogger builds a console logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

// NewRandomizer builds the configured piece randomizer.
func (c Config) NewRandomizer() (tetris.Randomizer, error) {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	switch c.Randomizer {
	case RandomUniform:
		return tetris.NewUniform(seed), nil
	case RandomBag:
		return tetris.NewBag(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRandomizer, c.Randomizer)
}

// GameOptions returns the tetris.Game options for this configuration.
func (c Config) GameOptions(log zerolog.Logger) ([]tetris.Option, error) {
	r, err := c.NewRandomizer()
	if err != nil {
		return nil, err
	}
	if !c.Level.Valid() {
		return nil, fmt.Errorf("%w: %d", tetris.ErrInvalidLevel, c.Level)
	}
	return []tetris.Option{tetris.WithLevel(c.Level), tetris.WithRandomizer(r), tetris.WithLogger(log)}, nil
}

// OpenStore opens the configured lifetime stats store. The postgres store
// migrates its schema first.
func (c Config) OpenStore(ctx context.Context, log zerolog.Logger) (store.Store, error) {
	switch c.Store {
	case StoreFile:
		return store.NewFileStore(c.StatsPath, store.WithFileLogger(log)), nil
	case StoreMemory:
		return store.NewMemoryStore(), nil
	case StorePostgres:
		if c.PostgresURL == "" {
			return nil, errors.New("postgres store needs a connection string")
		}
		if err := store.Migrate(ctx, c.PostgresURL, log); err != nil {
			return nil, err
		}
		s, err := store.NewPostgresStore(ctx, c.PostgresURL, c.Profile)
		if err != nil {
			return nil, fmt.Errorf("connect postgres store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
}
