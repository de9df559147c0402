package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/charkeep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseLevel("trace")
	assert.Error(t, err)
}

func TestReadRecord(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		rec, err := readRecord("-", strings.NewReader(`{ "name": "Garb", "level": 3 }`))
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Garb","level":3}`, string(rec))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garb.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"Garb"}`), 0o644))

		rec, err := readRecord(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "Garb", rec.Name())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := readRecord("-", strings.NewReader(`{"name":`))
		assert.ErrorIs(t, err, core.ErrParse)
	})

	t.Run("unnamed", func(t *testing.T) {
		_, err := readRecord("-", strings.NewReader(`{"level":1}`))
		assert.ErrorIs(t, err, core.ErrMissingName)
	})
}
