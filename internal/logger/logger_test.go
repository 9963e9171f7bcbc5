package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Init(Config{Level: "info", Format: "json", Service: "test", Out: &buf})
	require.NoError(t, err)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.Info().Str("k", "v").Msg("hello")
	logger.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "v", entry["k"])
}

func TestInit_InvalidLevel(t *testing.T) {
	_, err := Init(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestInit_File(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := Init(Config{Level: "info", FileEnabled: true, FilePath: dir, Service: "svc", RotationSize: 1, Out: &buf})
	require.NoError(t, err)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.Info().Msg("to file")

	data, err := os.ReadFile(filepath.Join(dir, "svc.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
