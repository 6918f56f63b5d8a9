package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ANSI colors used by ColoredHandler
const (
	Reset     = "\033[0m"
	Red       = "\033[31m"
	Green     = "\033[32m"
	Yellow    = "\033[33m"
	Magenta   = "\033[35m"
	Cyan      = "\033[36m"
	White     = "\033[37m"
	BoldBlue  = "\033[1;34m"
	BoldWhite = "\033[1;37m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: Cyan,
	slog.LevelInfo:  Green,
	slog.LevelWarn:  Yellow,
	slog.LevelError: Red,
}

// Log formats accepted by SetupLogger
const (
	FormatText = "text"
	FormatJSON = "json"
)

type requestIDKey struct{}

// requestIDAttr is the attribute key carrying the request id
const requestIDAttr = "request_id"

// WithRequestID returns a context whose log records carry id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored on ctx, or ""
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ColoredHandler renders records as one colored line for terminals
type ColoredHandler struct {
	opts  slog.HandlerOptions
	out   io.Writer
	attrs []slog.Attr
	group string
}

// NewColoredHandler creates a handler writing to w
func NewColoredHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ColoredHandler{opts: *opts, out: w}
}

// Enabled reports whether level is at or above the configured minimum
func (h *ColoredHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes the record
func (h *ColoredHandler) Handle(ctx context.Context, r slog.Record) error {
	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = White
	}

	var line strings.Builder
	fmt.Fprintf(&line, "%s%s%s ", Magenta, r.Time.Format("15:04:05.000"), Reset)
	fmt.Fprintf(&line, "%s%-6s%s ", levelColor, strings.ToUpper(r.Level.String()), Reset)
	if id := RequestID(ctx); id != "" {
		fmt.Fprintf(&line, "%s[%s]%s ", BoldBlue, id, Reset)
	}
	fmt.Fprintf(&line, "%s%s%s", BoldWhite, r.Message, Reset)

	write := func(prefix string) func(a slog.Attr) bool {
		return func(a slog.Attr) bool {
			if a.Key == requestIDAttr || a.Equal(slog.Attr{}) {
				return true
			}
			writeAttr(&line, prefix, a)
			return true
		}
	}
	for _, a := range h.attrs {
		write("")(a)
	}
	r.Attrs(write(h.group))

	_, err := fmt.Fprintln(h.out, line.String())
	return err
}

func writeAttr(line *strings.Builder, prefix string, a slog.Attr) {
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	val := a.Value.Resolve().String()
	if a.Value.Kind() == slog.KindString {
		val = fmt.Sprintf("%q", val)
	}
	fmt.Fprintf(line, " %s%s%s=%s", Yellow, key, Reset, val)
}

// WithAttrs returns a handler that adds attrs to every record
func (h *ColoredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup returns a handler that prefixes later attribute keys with name
func (h *ColoredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

// contextHandler adds the request id from the context to structured output
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String(requestIDAttr, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// NewLogger builds a logger: colored text for terminals, JSON for services
func NewLogger(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", FormatText:
		return slog.New(NewColoredHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(contextHandler{slog.NewJSONHandler(w, opts)}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// SetupLogger installs the logger as the slog default
func SetupLogger(w io.Writer, format string, level slog.Level) error {
	logger, err := NewLogger(w, format, level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// ParseLevel resolves "debug", "info", "warn" or "error"
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
