// Package infolog prints conversion progress and diagnostics in the
// bulleted console format, filtered by a verbosity level:
//
//	0 silent, 1 errors, 2 warnings, 3 steps, 4 details, 5 items
package infolog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"badig/pkg/token"
)

// Verbosity levels.
const (
	Silent = iota
	LevelError
	LevelWarning
	LevelMain
	LevelSub
	LevelItem
)

// slog levels for the steps between Info and Debug.
const (
	slogSub  = slog.Level(-2)
	slogItem = slog.LevelDebug
)

var bullets = map[slog.Level]string{
	slog.LevelError: "*** ",
	slog.LevelWarn:  "  * ",
	slog.LevelInfo:  "--- ",
	slogSub:         "  - ",
	slogItem:        "    ",
}

const posKey = "pos"

// threshold maps a verbosity to the lowest slog level still printed.
func threshold(verbosity int) slog.Level {
	switch {
	case verbosity <= LevelError:
		return slog.LevelError
	case verbosity == LevelWarning:
		return slog.LevelWarn
	case verbosity == LevelMain:
		return slog.LevelInfo
	case verbosity == LevelSub:
		return slogSub
	}
	return slogItem
}

// Handler is a slog.Handler writing "bullet file: (lin,col): message".
type Handler struct {
	w         io.Writer
	verbosity int
	mu        *sync.Mutex
	attrs     []slog.Attr
}

// NewHandler returns a handler printing records allowed by verbosity.
func NewHandler(w io.Writer, verbosity int) *Handler {
	return &Handler{w: w, verbosity: verbosity, mu: &sync.Mutex{}}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.verbosity > Silent && level >= threshold(h.verbosity)
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var pos *token.Position
	var extra []string
	collect := func(a slog.Attr) bool {
		if p, ok := a.Value.Any().(token.Position); ok && a.Key == posKey {
			pos = &p
			return true
		}
		extra = append(extra, a.Key+"="+a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var b strings.Builder
	b.WriteString(bullet(r.Level))
	if pos != nil {
		if r.Level >= slog.LevelError {
			fmt.Fprintf(&b, "%s: ", filepath.Base(pos.File))
		}
		fmt.Fprintf(&b, "(%d,%d): ", pos.Line, pos.Col)
	}
	b.WriteString(r.Message)
	if len(extra) > 0 {
		b.WriteString(" " + strings.Join(extra, " "))
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *Handler) WithGroup(string) slog.Handler { return h }

func bullet(level slog.Level) string {
	if b, ok := bullets[level]; ok {
		return b
	}
	if level > slog.LevelError {
		return bullets[slog.LevelError]
	}
	return bullets[slogItem]
}

// Logger is the conversion log.
type Logger struct {
	log       *slog.Logger
	w         io.Writer
	verbosity int
}

// New returns a logger writing to w.
func New(w io.Writer, verbosity int) *Logger {
	return &Logger{log: slog.New(NewHandler(w, verbosity)), w: w, verbosity: verbosity}
}

// Discard returns a logger that prints nothing.
func Discard() *Logger { return New(io.Discard, Silent) }

// Verbosity returns the configured level.
func (l *Logger) Verbosity() int { return l.verbosity }

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger { return l.log }

// Quiet returns a logger that prints errors only, used while processing
// included files.
func (l *Logger) Quiet() *Logger {
	return New(l.w, min(l.verbosity, LevelError))
}

func (l *Logger) Main(format string, args ...any) {
	l.log.Log(context.Background(), slog.LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Sub(format string, args ...any) {
	l.log.Log(context.Background(), slogSub, fmt.Sprintf(format, args...))
}

func (l *Logger) Item(format string, args ...any) {
	l.log.Log(context.Background(), slogItem, fmt.Sprintf(format, args...))
}

// Warning reports an advisory problem at pos. Conversion goes on.
func (l *Logger) Warning(pos token.Position, format string, args ...any) {
	l.log.Log(context.Background(), slog.LevelWarn, fmt.Sprintf(format, args...), slog.Any(posKey, pos))
}

// Fatal prints err with the offending source line and a caret under the
// column, then the stop notice. Nothing is printed when silent.
func (l *Logger) Fatal(err error) {
	if l.verbosity == Silent {
		return
	}
	var e *Error
	if !errors.As(err, &e) {
		l.log.Error(err.Error() + "\n    Conversion stopped.")
		return
	}
	msg := e.Msg
	if e.HasPos {
		col := max(e.Pos.Col-e.Pos.Offset-1, 0)
		msg += "\n    " + strings.TrimSpace(e.Pos.Text)
		msg += "\n    " + strings.Repeat("-", col) + "^"
	}
	msg += "\n    Conversion stopped."
	if e.HasPos {
		l.log.Error(msg, slog.Any(posKey, e.Pos))
		return
	}
	l.log.Error(msg)
}
