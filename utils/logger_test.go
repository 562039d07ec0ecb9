package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			SetLogLevel(tt.level)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestNewLogger_Formats(t *testing.T) {
	var jsonOut bytes.Buffer
	l := newLogger(&jsonOut, "JSON")
	l.Info().Str("order_reference", "ORD-1").Msg("hello")
	assert.Contains(t, jsonOut.String(), `"order_reference":"ORD-1"`)
	assert.Contains(t, jsonOut.String(), `"message":"hello"`)

	var consoleOut bytes.Buffer
	l = newLogger(&consoleOut, "console")
	l.Info().Msg("hello")
	assert.Contains(t, consoleOut.String(), "hello")
	assert.NotContains(t, consoleOut.String(), `"message"`)
}
