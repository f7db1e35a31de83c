package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "WARN", want: zerolog.WarnLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "bogus", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			r := NewLogger(Config{Level: tt.level, Output: OutputDiscard})
			assert.Equal(t, tt.want, r.Logger.GetLevel())
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "carbonroots.log")

	r := NewLogger(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
	require.True(t, r.UsingFile)
	assert.Equal(t, path, r.FilePath)

	r.Logger.Info().Str("species", "Neem").Msg("calculation complete")
	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"species":"Neem"`)
}

func TestNewLogger_FileFallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	r := NewLogger(Config{Output: OutputFile, File: filepath.Join(blocker, "x.log")})
	assert.False(t, r.UsingFile)
	assert.True(t, r.FallbackUsed)
	assert.NotEmpty(t, r.FallbackReason)
}

func TestContextSessionID(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())

	ctx = ContextWithSessionID(ctx, "01HZX")

	FromContext(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"session_id":"01HZX"`)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(zerolog.New(&buf), "engine")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"engine"`)
}
