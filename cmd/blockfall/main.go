// Command blockfall plays the game in a window.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
	"github.com/plus3/blockfall/ui/debugui"
	blockebiten "github.com/plus3/blockfall/ui/ebiten"
	"github.com/rs/zerolog"
)

func main() {
	cfg, envErr := config.FromEnv(os.Getenv)
	cfg.Register(flag.CommandLine)
	attract := flag.Bool("attract", false, "Let the computer play.")
	repeat := flag.Duration("repeat", 80*time.Millisecond, "Auto-repeat interval for held keys.")
	flag.Parse()

	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log = zerolog.New(os.Stderr)
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if envErr != nil {
		log.Warn().Err(envErr).Msg("ignoring invalid environment settings")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	st, err := cfg.OpenStore(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("opening stats store")
	}
	defer st.Close()
	if cfg.ResetStats {
		if err := st.Reset(ctx); err != nil {
			log.Fatal().Err(err).Msg("resetting stats")
		}
	}

	var lifetime atomic.Value
	refresh := func() {
		if l, err := st.Load(ctx); err == nil {
			lifetime.Store(l)
		}
	}
	refresh()

	rec := ui.NewRecorder(func(f ui.Frame) {
		if f.Over {
			refresh()
		}
	})
	keys := blockebiten.NewKeyboardInput(blockebiten.DefaultBindings(), *repeat)

	var source tetris.InputSource = keys
	if *attract {
		a := input.NewAttract(50*time.Millisecond, cfg.Seed)
		go a.Run(ctx)
		source = a
	}

	newGame := func() *tetris.Game {
		opts, err := cfg.GameOptions(log)
		if err != nil {
			log.Fatal().Err(err).Msg("bad game settings")
		}
		return tetris.NewGame(append(opts, tetris.WithSink(rec))...)
	}
	session := tetris.NewSession(newGame, source, st,
		tetris.WithSessionLogger(log),
		tetris.WithControllerOptions(
			tetris.WithGameOverPause(cfg.GameOverPause),
			tetris.WithControllerLogger(log),
		),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := session.Run(ctx); err != nil {
			log.Error().Err(err).Msg("session ended")
		}
	}()

	opts := []blockebiten.Option{
		blockebiten.WithLifetime(func() tetris.Lifetime {
			l, _ := lifetime.Load().(tetris.Lifetime)
			return l
		}),
	}
	if cfg.Debug {
		overlay := debugui.NewOverlay("blockfall", blockebiten.ScreenWidth, blockebiten.ScreenHeight)
		overlay.Add(debugui.NewPanel(session.Stats, 120).Render)
		opts = append(opts, blockebiten.WithOverlay(overlay))
	} else {
		ebiten.SetWindowSize(blockebiten.ScreenWidth, blockebiten.ScreenHeight)
		ebiten.SetWindowTitle("blockfall")
	}

	if err := ebiten.RunGame(blockebiten.NewGame(rec, keys, done, opts...)); err != nil {
		log.Error().Err(err).Msg("window closed")
	}
	cancel()
	<-done
}
