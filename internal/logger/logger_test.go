package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" DEBUG ": zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestInitReplacesLogger(t *testing.T) {
	l := Init(Config{Env: "prod", Level: "error"})
	assert.Same(t, l, L())
	assert.False(t, L().Core().Enabled(zapcore.InfoLevel))

	Init(Config{Level: "debug"})
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
	assert.NotNil(t, Named("abi"))
}

func TestInitUnwritableOutputFallsBack(t *testing.T) {
	var buf bytes.Buffer
	prev := fallback
	fallback = zapcore.AddSync(&buf)
	t.Cleanup(func() {
		fallback = prev
		Init(Config{})
	})

	bad := filepath.Join(t.TempDir(), "missing", "abicheck.log")
	l := Init(Config{Level: "info", Output: bad})
	assert.Contains(t, buf.String(), "log output unavailable")
	assert.Contains(t, buf.String(), bad)

	l.Info("still logging")
	assert.Contains(t, buf.String(), "still logging")
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abicheck.log")
	t.Cleanup(func() { Init(Config{}) })

	l := Init(Config{Env: "prod", Output: path})
	l.Info("to file")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
}
