package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/blockfall/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLog(t *testing.T) {
	t.Run("writes to the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blockfall.log")
		log, f, err := openLog(config.Default(), path)
		require.NoError(t, err)

		log.Info().Msg("hello")
		require.NoError(t, f.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := config.Default()
		cfg.LogLevel = "loud"
		_, f, err := openLog(cfg, filepath.Join(t.TempDir(), "blockfall.log"))
		assert.Error(t, err)
		assert.Nil(t, f)
	})

	t.Run("unwritable path", func(t *testing.T) {
		_, _, err := openLog(config.Default(), filepath.Join(t.TempDir(), "missing", "blockfall.log"))
		assert.Error(t, err)
	})
}
