package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Writer: &buf,
		Format: FormatJSON,
		Level:  slog.LevelInfo,
	})

	logger.Info("server started", "port", "8080")

	output := buf.String()
	assert.Contains(t, output, `"msg":"server started"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"port":"8080"`)
}

func TestNew_FormatPickedByEnvironment(t *testing.T) {
	tests := []struct {
		environment string
		wantJSON    bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{
				Writer:      &buf,
				Environment: tt.environment,
				Level:       slog.LevelInfo,
			})

			logger.Info("heartbeat")

			output := buf.String()
			if tt.wantJSON {
				assert.Contains(t, output, `"msg":"heartbeat"`)
			} else {
				assert.Contains(t, output, "heartbeat")
				assert.Contains(t, output, "\033[", "console format should carry ANSI escapes")
			}
		})
	}
}

func TestNew_ExplicitFormatBeatsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Writer:      &buf,
		Format:      FormatJSON,
		Environment: "development",
		Level:       slog.LevelInfo,
	})

	logger.Info("heartbeat")
	assert.Contains(t, buf.String(), `"msg":"heartbeat"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Writer: &buf,
		Format: FormatJSON,
		Level:  slog.LevelWarn,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestConsoleHandler_Enabled(t *testing.T) {
	h := NewConsoleHandler(&bytes.Buffer{}, slog.LevelInfo, false)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestConsoleHandler_RendersMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, slog.LevelInfo, false))

	logger.Info("list entry added", "user_id", "u_1", "progress", 12)

	output := buf.String()
	assert.Contains(t, output, "list entry added")
	assert.Contains(t, output, "user_id=u_1")
	assert.Contains(t, output, "progress=12")
	assert.Contains(t, output, "INFO")
}

func TestConsoleHandler_LevelLabels(t *testing.T) {
	tests := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelInfo, "INFO"},
		{slog.LevelWarn, "WARN"},
		{slog.LevelError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewConsoleHandler(&buf, slog.LevelDebug, false))

			logger.Log(context.Background(), tt.level, "heartbeat")
			assert.Contains(t, buf.String(), tt.label)
		})
	}
}

func TestConsoleHandler_WithAttrsCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleHandler(&buf, slog.LevelInfo, false)

	logger := slog.New(base.WithAttrs([]slog.Attr{slog.String("component", "api")}))
	logger.Info("heartbeat")

	assert.Contains(t, buf.String(), "component=api")

	// The base handler is not mutated.
	buf.Reset()
	slog.New(base).Info("heartbeat")
	assert.NotContains(t, buf.String(), "component=api")
}

func TestConsoleHandler_GroupPrefixesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, slog.LevelInfo, false))

	logger.WithGroup("request").Info("handled", "method", "GET")

	assert.Contains(t, buf.String(), "request.method=GET")
}

func TestConsoleHandler_EmptyGroupIsNoop(t *testing.T) {
	h := NewConsoleHandler(&bytes.Buffer{}, slog.LevelInfo, false)
	assert.Same(t, slog.Handler(h), h.WithGroup(""))
}

func TestConsoleHandler_AddSource(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, slog.LevelInfo, true))

	logger.Info("heartbeat")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestNew_DefaultWriter(t *testing.T) {
	logger := New(Config{Format: FormatJSON, Level: slog.LevelInfo})
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}
