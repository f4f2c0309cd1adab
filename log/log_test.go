package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MinterTeam/taxtoken/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer

	l, err := newLogger(&buf, config.LogFormatJSON, "info")
	require.NoError(t, err)

	l.With("module", "token").Info("tx delivered", "type", "transfer")
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "tx delivered", entry["_msg"])
	assert.Equal(t, "token", entry["module"])
}

func TestNewLoggerModuleLevels(t *testing.T) {
	var buf bytes.Buffer

	l, err := newLogger(&buf, config.LogFormatPlain, "token:debug,*:error")
	require.NoError(t, err)

	l.With("module", "api").Info("dropped")
	l.With("module", "token").Debug("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLoggerErrors(t *testing.T) {
	_, err := newLogger(&bytes.Buffer{}, "xml", "info")
	assert.Error(t, err)

	_, err = newLogger(&bytes.Buffer{}, config.LogFormatPlain, "token:loud")
	assert.Error(t, err)
}

func TestNewLoggerFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogPath = filepath.Join(t.TempDir(), "taxtoken.log")

	l, err := NewLogger(cfg)
	require.NoError(t, err)
	l.Info("started")

	data, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}
