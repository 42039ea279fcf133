// Package logger wires slog for the MediaLog server: JSON records in
// production, compact colorized console lines everywhere else.
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Output formats. An empty Config.Format picks by environment.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ANSI escapes used by the console handler.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// Logger is the application logger handed out by the DI container.
type Logger struct {
	*slog.Logger
}

// Config selects the output format and verbosity.
type Config struct {
	Writer      io.Writer
	Format      string
	Environment string
	Level       slog.Level
	AddSource   bool
}

// New builds a logger from the config. Production defaults to JSON so
// log shippers get structured records; other environments default to
// console lines.
func New(cfg Config) *Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Format == "" {
		if cfg.Environment == "production" {
			cfg.Format = FormatJSON
		} else {
			cfg.Format = FormatConsole
		}
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{
			Level:       cfg.Level,
			AddSource:   cfg.AddSource,
			ReplaceAttr: trimSourcePath,
		})
	} else {
		handler = NewConsoleHandler(cfg.Writer, cfg.Level, cfg.AddSource)
	}
	return &Logger{Logger: slog.New(handler)}
}

// ParseLevel maps a config string to a slog level. Unknown values fall
// back to info rather than failing startup.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// trimSourcePath keeps only the file name in source attributes.
func trimSourcePath(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		if src, ok := a.Value.Any().(*slog.Source); ok {
			src.File = filepath.Base(src.File)
		}
	}
	return a
}

// ConsoleHandler renders records as single colorized lines:
//
//	14:03:21 INFO  list entry added user_id=u_1 category=anime
//
// Group names are folded into attribute keys ("request.method") instead
// of nesting.
type ConsoleHandler struct {
	w         io.Writer
	level     slog.Level
	addSource bool
	attrs     []slog.Attr
	prefix    string
}

// NewConsoleHandler creates a console handler writing to w.
func NewConsoleHandler(w io.Writer, level slog.Level, addSource bool) *ConsoleHandler {
	return &ConsoleHandler{w: w, level: level, addSource: addSource}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler. The line is assembled in one buffer so
// concurrent loggers cannot interleave partial records.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%s%s%s ", ansiDim, r.Time.Format("15:04:05"), ansiReset)
	fmt.Fprintf(&b, "%s%-5s%s ", levelColor(r.Level), levelLabel(r.Level), ansiReset)

	if h.addSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		fmt.Fprintf(&b, "%s%s:%d%s ", ansiDim, filepath.Base(frame.File), frame.Line, ansiReset)
	}

	fmt.Fprintf(&b, "%s%s%s", ansiBold, r.Message, ansiReset)

	// Attrs from WithAttrs were prefixed when they were recorded.
	for _, a := range h.attrs {
		appendAttr(&b, a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix+a.Key, a.Value)
		return true
	})

	b.WriteByte('\n')
	_, err := h.w.Write(b.Bytes())
	return err
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		a.Key = next.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return next
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix += name + "."
	return next
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		w:         h.w,
		level:     h.level,
		addSource: h.addSource,
		attrs:     append([]slog.Attr(nil), h.attrs...),
		prefix:    h.prefix,
	}
}

func appendAttr(b *bytes.Buffer, key string, v slog.Value) {
	fmt.Fprintf(b, " %s%s=%s%s", ansiCyan, key, v.Resolve().String(), ansiReset)
}

func levelLabel(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return ansiRed
	case l >= slog.LevelWarn:
		return ansiYellow
	case l >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiCyan
	}
}
