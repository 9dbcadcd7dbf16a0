package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meur/unlockforge/internal/logging"
)

func TestAutoFormatWritesJSONToNonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "auto", Output: &buf})
	require.NoError(t, err)

	logger.Info("catalog loaded", zap.Int("items", 3))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "catalog loaded", entry["message"])
	require.Equal(t, "INFO", entry["severity"])
	require.EqualValues(t, 3, entry["items"])
}

func TestDebugLevelAndConsoleFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Debug("skipping duplicate item", zap.Int("id", 7))
	require.Contains(t, buf.String(), "skipping duplicate item")
	require.Contains(t, buf.String(), `"id": 7`)
}

func TestUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := logging.New(logging.Options{Format: "xml"})
	require.Error(t, err)
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "loud", Format: "json", Output: &buf})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
