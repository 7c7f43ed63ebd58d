package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobal(t *testing.T) {
	logger, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	})
}

func TestSetupRoutesByLevel(t *testing.T) {
	restoreGlobal(t)
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "desk.log")

	cleanup, err := Setup(Options{Level: "info", File: path, Production: true, Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("user", "admin@example.com").Msg("asset created")
	log.Warn().Msg("slow query")
	log.Error().Msg("database locked")
	cleanup()

	assert.Contains(t, stdout.String(), `"message":"asset created"`)
	assert.Contains(t, stdout.String(), "slow query")
	assert.NotContains(t, stdout.String(), "database locked")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stderr.String(), "database locked")
	assert.NotContains(t, stderr.String(), "asset created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "asset created")
	assert.Contains(t, string(data), "database locked")
}

func TestSetupConsoleInDevelopment(t *testing.T) {
	restoreGlobal(t)
	var stdout bytes.Buffer

	_, err := Setup(Options{Stdout: &stdout, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)
	log.Info().Str("addr", ":8080").Msg("server started")

	assert.Contains(t, stdout.String(), "INF server started addr=:8080")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
