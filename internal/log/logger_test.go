package log_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordnung/internal/log"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stdout) })
	return &buf
}

func TestLogLevels(t *testing.T) {
	buf := capture(t)

	log.Info("moved %s", "a.txt")
	log.Warn("collision on %s", "b.txt")
	log.Error("failed to move %s", "c.txt")

	out := buf.String()
	assert.Contains(t, out, "INFO: moved a.txt")
	assert.Contains(t, out, "WARN: collision on b.txt")
	assert.Contains(t, out, "ERROR: failed to move c.txt")
}

func TestTimestampPrefix(t *testing.T) {
	buf := capture(t)
	log.Info("hello")

	line := buf.String()
	require.True(t, strings.HasPrefix(line, "["), "line should start with a timestamp: %q", line)
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] INFO: hello`, line)
}

func TestDebugGating(t *testing.T) {
	buf := capture(t)

	log.SetDebug(false)
	log.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	log.SetDebug(true)
	defer log.SetDebug(false)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "DEBUG: visible")
}

func TestFileTee(t *testing.T) {
	buf := capture(t)
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	require.NoError(t, log.SetFile(path))
	defer log.Close()

	log.Info("teed line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: teed line")
	assert.Contains(t, buf.String(), "INFO: teed line", "console output keeps mirroring")
}

func TestFileAppends(t *testing.T) {
	capture(t)
	path := filepath.Join(t.TempDir(), "run.log")

	require.NoError(t, log.SetFile(path))
	log.Info("first")
	log.Close()

	require.NoError(t, log.SetFile(path))
	log.Info("second")
	log.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}
