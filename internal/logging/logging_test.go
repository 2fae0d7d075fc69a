package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
		wantInfo  bool
	}{
		{name: "default", opts: Options{}, wantDebug: false, wantInfo: false},
		{name: "verbose", opts: Options{Verbose: true}, wantDebug: true, wantInfo: true},
		{name: "json", opts: Options{JSON: true}, wantDebug: false, wantInfo: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.wantInfo, logger.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}

// TestNew_JSONOutput verifies that --json logs are one JSON object per line.
func TestNew_JSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := New(Options{JSON: true, Verbose: true, OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Named("probe").Info("candidate found", zap.String("url", "https://example.com/a.png"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "candidate found", entry["msg"])
	assert.Equal(t, "probe", entry["logger"])
	assert.Equal(t, "https://example.com/a.png", entry["url"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_ConsoleOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	logger, err := New(Options{OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("probe timed out", zap.String("url", "https://example.com/b.png"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "probe timed out")
}

func TestNop(t *testing.T) {
	logger := Nop()
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
