package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", "", &buf)
	log.Info("hidden")
	log.Warn("shown", zap.Int("faces", 3))
	require.NoError(t, log.Sync())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN shown")
	assert.Contains(t, buf.String(), `"faces": 3`)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.log")
	log := New("debug", path, nil)
	log.Debug("to file")
	require.NoError(t, log.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG")
	assert.Contains(t, string(data), "to file")
}

func TestNew_Nop(t *testing.T) {
	log := NewWithFileConfig("info", FileConfig{}, nil)
	assert.NotPanics(t, func() { log.Info("nowhere") })
}
