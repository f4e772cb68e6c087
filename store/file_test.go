package store_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `[Tetris scores]
Highest lines in one game :   data[ 12 ]
Total lines cleared :         data[ 40 ]
Games played :                data[ 7 ]
Highest score :               data[ 234 ]
`

func TestRecordFormat(t *testing.T) {
	want := tetris.Lifetime{HighestLines: 12, TotalLinesCleared: 40, GamesPlayed: 7, HighestScore: 234}

	t.Run("encode", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, store.EncodeRecord(&buf, want))
		if diff := cmp.Diff(sampleRecord, buf.String()); diff != "" {
			t.Errorf("encoded record (-want +got):\n%s", diff)
		}
	})

	t.Run("decode", func(t *testing.T) {
		got, err := store.DecodeRecord(strings.NewReader(sampleRecord))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("decode without a trailing newline", func(t *testing.T) {
		got, err := store.DecodeRecord(strings.NewReader(strings.TrimSuffix(sampleRecord, "\n")))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("malformed", func(t *testing.T) {
		bad := map[string]string{
			"empty":        "",
			"short":        "[Tetris scores]\nHighest lines in one game :   data[ 1 ]\n",
			"wrong header": strings.Replace(sampleRecord, "[Tetris scores]", "[scores]", 1),
			"not a number": strings.Replace(sampleRecord, "data[ 7 ]", "data[ seven ]", 1),
			"no marker":    strings.Replace(sampleRecord, "data[ 40 ]", "40", 1),
			"unterminated": strings.Replace(sampleRecord, "data[ 234 ]", "data[ 234", 1),
		}
		for name, text := range bad {
			t.Run(name, func(t *testing.T) {
				_, err := store.DecodeRecord(strings.NewReader(text))
				assert.ErrorIs(t, err, store.ErrMalformedRecord)
			})
		}
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is created with a zero record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "blockfall.dat")
		s := store.NewFileStore(path)

		l, err := s.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, tetris.Lifetime{}, l)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "[Tetris scores]\n"))
	})

	t.Run("save then load", func(t *testing.T) {
		s := store.NewFileStore(filepath.Join(t.TempDir(), "blockfall.dat"))
		want := tetris.Lifetime{HighestLines: 3, TotalLinesCleared: 5, GamesPlayed: 2, HighestScore: 18}

		require.NoError(t, s.Save(ctx, want))
		got, err := s.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("reads a record written elsewhere", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tetris.dat")
		require.NoError(t, os.WriteFile(path, []byte(sampleRecord), 0o644))

		got, err := store.NewFileStore(path).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, uint(234), got.HighestScore)
	})

	t.Run("malformed file is regenerated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tetris.dat")
		require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o644))
		var logs bytes.Buffer
		s := store.NewFileStore(path, store.WithFileLogger(zerolog.New(&logs)))

		l, err := s.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, tetris.Lifetime{}, l)
		assert.Contains(t, logs.String(), `"level":"warn"`)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = store.DecodeRecord(bytes.NewReader(data))
		assert.NoError(t, err)
	})

	t.Run("reset zeroes the record", func(t *testing.T) {
		s := store.NewFileStore(filepath.Join(t.TempDir(), "blockfall.dat"))
		require.NoError(t, s.Save(ctx, tetris.Lifetime{GamesPlayed: 9, HighestScore: 90}))

		require.NoError(t, s.Reset(ctx))

		l, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, tetris.Lifetime{}, l)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	var _ store.Store = s
	var _ tetris.GameRecorder = s

	g := tetris.NewGame(tetris.WithRandomizer(tetris.NewSequence(tetris.Square)))
	g.Start()
	for !g.Over() {
		g.HardDrop()
	}
	summary, err := g.Conclude(ctx, s)
	require.NoError(t, err)

	l, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(1), l.GamesPlayed)
	require.Len(t, s.Games(), 1)
	assert.Equal(t, summary.GameID, s.Games()[0].GameID)

	require.NoError(t, s.Reset(ctx))
	l, _ = s.Load(ctx)
	assert.Equal(t, tetris.Lifetime{}, l)
}

func TestConcurrentConclude(t *testing.T) {
	const players = 8
	stores := map[string]func(t *testing.T) store.Store{
		"memory": func(*testing.T) store.Store { return store.NewMemoryStore() },
		"file": func(t *testing.T) store.Store {
			return store.NewFileStore(filepath.Join(t.TempDir(), "blockfall.dat"))
		},
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			require.Implements(t, (*tetris.LifetimeUpdater)(nil), s)

			var wg sync.WaitGroup
			for range players {
				wg.Add(1)
				go func() {
					defer wg.Done()
					g := tetris.NewGame(tetris.WithRandomizer(tetris.NewSequence(tetris.Square)))
					g.Start()
					for !g.Over() {
						g.HardDrop()
					}
					_, err := g.Conclude(ctx, s)
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			l, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint(players), l.GamesPlayed)
		})
	}
}
