package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := InitWriter(&buf, "debug", "json")

	logger.Debug().Str("path", "/api/v1/location").Msg("query")

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), `"path":"/api/v1/location"`)
	assert.Contains(t, buf.String(), `"message":"query"`)
}

func TestInitWriterUnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := InitWriter(&buf, "chatty", "json")

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := InitWriter(&buf, "info", "console")

	logger.Info().Str("host", "sw1").Msg("skipped")

	assert.Contains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "host=sw1")
	assert.NotContains(t, buf.String(), "{")
}
