package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", JSON: true, Output: &buf})
	require.NoError(t, err)

	log.Infow("loaded", "rows", 2)
	log.Debugw("hidden")
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 2, entry["rows"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	log.Debugw("stage done", "stage", "tokenize")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "stage done")
	assert.Contains(t, buf.String(), "tokenize")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewRunIDSorts(t *testing.T) {
	prev := NewRunID()
	for i := 0; i < 100; i++ {
		id := NewRunID()
		_, err := ulid.ParseStrict(id)
		require.NoError(t, err)
		assert.Less(t, prev, id)
		prev = id
	}
}
