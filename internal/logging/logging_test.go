package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-flashcrc/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: "", want: LevelInfo},
		{input: "error", want: LevelError},
		{input: "warn", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerFiltersAndFormats(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Debug("hidden", "k", 1)
	l.Info("segment finalized", "index", 0, "size", 16)
	l.Error("skipping malformed record", "line", 3, "dangling")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO segment finalized index=0 size=16")
	assert.Contains(t, out, "ERROR skipping malformed record line=3 dangling=MISSING")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.NoError(t, l.Close())
}

func TestOpenWithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "flashcrc.log")
	var console bytes.Buffer

	l, err := Open(config.Logging{Level: "debug", File: logFile, MaxSizeMB: 1}, &console)
	require.NoError(t, err)

	l.Debug("parsed image", "segments", 2)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG parsed image segments=2")
	assert.Contains(t, console.String(), "DEBUG parsed image segments=2")
}

func TestOpenBadLevel(t *testing.T) {
	_, err := Open(config.Logging{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
