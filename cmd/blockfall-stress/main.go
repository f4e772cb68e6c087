// Command blockfall-stress plays many headless games at once with random
// input and reports timing and memory figures.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

func main() {
	cfg, envErr := config.FromEnv(os.Getenv)
	cfg.Level = tetris.MaxLevel
	cfg.LogLevel = zerolog.LevelWarnValue
	cfg.Register(flag.CommandLine)
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	players := flag.Int("players", 8, "Number of games played concurrently.")
	interval := flag.Duration("input-interval", time.Millisecond, "Delay between random commands.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log = zerolog.New(os.Stderr)
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if envErr != nil {
		log.Warn().Err(envErr).Msg("ignoring invalid environment settings")
	}
	if _, err := cfg.GameOptions(log); err != nil {
		log.Fatal().Err(err).Msg("bad game settings")
	}

	report := &Report{
		Duration:       *duration,
		Players:        *players,
		Level:          cfg.Level,
		InputInterval:  *interval,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Dur("duration", *duration).Int("players", *players).Msg("starting stress run")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	st := store.NewMemoryStore()
	sessions := make([]*tetris.Session, *players)
	var wg sync.WaitGroup
	startTime := time.Now()
	for i := range sessions {
		player := cfg
		player.Seed = cfg.Seed + uint64(i) + 1
		attract := input.NewAttract(*interval, player.Seed)
		go attract.Run(ctx)

		newGame := func() *tetris.Game {
			opts, _ := player.GameOptions(log)
			return tetris.NewGame(opts...)
		}
		sessions[i] = tetris.NewSession(newGame, attract, st,
			tetris.WithControllerOptions(tetris.WithControllerLogger(log)),
		)
		wg.Add(1)
		go func(s *tetris.Session) {
			defer wg.Done()
			if _, err := s.Run(ctx); err != nil {
				log.Error().Err(err).Msg("session failed")
			}
		}(sessions[i])
	}
	wg.Wait()

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	for _, s := range sessions {
		report.Add(s.Results(), s.Stats())
	}
	report.Finalize()
	report.Lifetime, _ = st.Load(context.Background())

	log.Info().Int("games", report.Games).Msg("stress run finished")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
