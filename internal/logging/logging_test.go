package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{"warn", LevelWarn},
		{" error ", LevelError},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	previous := GetLevel()
	SetLevel(LevelWarn)
	defer func() {
		SetOutput(os.Stderr)
		SetLevel(previous)
	}()

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %s", "warn")
	Error("shown %s", "error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetPrefix("set-default")
	defer func() {
		SetPrefix("")
		SetOutput(os.Stderr)
	}()

	Error("boom")
	assert.Contains(t, buf.String(), "[ERROR] [set-default] boom")
}

func TestInitLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()

	path, err := InitLogger(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, LogFileName), path)

	Error("written to file")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
