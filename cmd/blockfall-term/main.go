// Command blockfall-term plays the game in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
	"github.com/plus3/blockfall/ui/term"
	"github.com/rs/zerolog"
)

func main() {
	cfg, envErr := config.FromEnv(os.Getenv)
	cfg.Register(flag.CommandLine)
	logPath := flag.String("log-file", "blockfall.log", "Where to write logs while the terminal is in use.")
	flag.Parse()

	log, logFile, err := openLog(cfg, *logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()
	if envErr != nil {
		log.Warn().Err(envErr).Msg("ignoring invalid environment settings")
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("blockfall-term failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openLog appends logs to path, since the terminal itself is taken by the
// game.
func openLog(cfg config.Config, path string) (zerolog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	log, err := cfg.NewLogger(f)
	if err != nil {
		f.Close()
		return zerolog.Nop(), nil, err
	}
	return log, f, nil
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	st, err := cfg.OpenStore(ctx, log)
	if err != nil {
		return err
	}
	defer st.Close()
	if cfg.ResetStats {
		if err := st.Reset(ctx); err != nil {
			return err
		}
	}
	// Fail before taking over the terminal.
	if _, err := cfg.GameOptions(log); err != nil {
		return err
	}

	screen, err := term.Open()
	if err != nil {
		return err
	}
	defer screen.Close()

	rec := ui.NewRecorder(screen.Draw)
	keys := term.NewKeyboard()
	go keys.Run(ctx)

	newGame := func() *tetris.Game {
		opts, _ := cfg.GameOptions(log)
		return tetris.NewGame(append(opts, tetris.WithSink(rec))...)
	}
	session := tetris.NewSession(newGame, keys, st,
		tetris.WithSessionLogger(log),
		tetris.WithControllerOptions(
			tetris.WithGameOverPause(cfg.GameOverPause),
			tetris.WithControllerLogger(log),
		),
	)
	results, err := session.Run(ctx)
	cancel()
	if err != nil {
		return err
	}
	log.Info().Int("games", len(results)).Msg("session over")
	return nil
}
