package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func resetLogger() {
	global = nil
	once = sync.Once{}
}

// captureStreams swaps os.Stdout and os.Stderr for pipes while fn runs.
// The logger must be initialized inside fn so its stderr sink is the pipe.
func captureStreams(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	resetLogger()

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	defer func() {
		os.Stdout, os.Stderr = origOut, origErr
		resetLogger()
	}()

	fn()

	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())
	outBytes, err := io.ReadAll(outR)
	require.NoError(t, err)
	errBytes, err := io.ReadAll(errR)
	require.NoError(t, err)
	return string(outBytes), string(errBytes)
}

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"default guard settings", "warn", "console", zapcore.WarnLevel, false},
		{"ci debugging", "debug", "console", zapcore.DebugLevel, false},
		{"machine logs", "info", "json", zapcore.InfoLevel, false},
		{"unknown format falls back to console", "error", "logfmt", zapcore.ErrorLevel, false},
		{"invalid level", "loud", "console", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger()
			err := Init(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.level)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, GetLevel())
		})
	}
}

func TestInit_WritesOnlyToStderr(t *testing.T) {
	stdout, stderr := captureStreams(t, func() {
		require.NoError(t, Init("info", "console"))
		Warn("Skipping unreadable candidate", zap.String("path", "supabase/migrations"))
		_ = Sync()
	})

	assert.Empty(t, stdout, "stdout is reserved for the report")
	assert.Contains(t, stderr, "Skipping unreadable candidate")
	assert.Contains(t, stderr, "supabase/migrations")
}

func TestInit_WarnLevelHidesRunChatter(t *testing.T) {
	_, stderr := captureStreams(t, func() {
		require.NoError(t, Init("warn", "json"))
		Debug("Discovered migration files")
		Info("Migration safety check passed")
		Warn("Skipping unreadable path")
		_ = Sync()
	})

	assert.NotContains(t, stderr, "Discovered migration files")
	assert.NotContains(t, stderr, "Migration safety check passed")
	assert.Contains(t, stderr, "Skipping unreadable path")
}

func TestWith_CarriesRunIDAndCaller(t *testing.T) {
	_, stderr := captureStreams(t, func() {
		require.NoError(t, Init("info", "json"))
		With(zap.String("run_id", "7f1c")).Info("Naming validation failed", zap.Int("violations", 2))
		Info("Guard run finished")
		_ = Sync()
	})

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 2)

	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Contains(t, entry["caller"], "logger_test.go", "caller must point at the call site, not the logger package")
	}

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "7f1c", first["run_id"])
	assert.Equal(t, "Naming validation failed", first["msg"])
	assert.EqualValues(t, 2, first["violations"])
}

func TestSetLevel(t *testing.T) {
	resetLogger()
	require.NoError(t, Init("warn", "console"))

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, GetLevel())

	require.Error(t, SetLevel("bogus"))
	assert.Equal(t, zapcore.DebugLevel, GetLevel(), "a rejected level must leave the current one in place")

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, GetLevel())
}

func TestL_PanicsWithoutInit(t *testing.T) {
	resetLogger()
	assert.Panics(t, func() { L() })
}

func TestSync_WithoutInit(t *testing.T) {
	resetLogger()
	assert.NoError(t, Sync())
}
