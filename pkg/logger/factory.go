package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// UnmarshalText implements encoding.TextUnmarshaler for LOG_FORMAT.
func (f *Format) UnmarshalText(text []byte) error {
	switch v := Format(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case FormatJSON, FormatText:
		*f = v
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(text))
	}
}

// Config is the env-driven logger setup. Production environments default
// to JSON at info level, anything else to text at debug level; Level and
// Format override those defaults.
type Config struct {
	Service   string `env:"APP_NAME" envDefault:"sesskit"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	Level     string `env:"LOG_LEVEL"`
	Format    Format `env:"LOG_FORMAT"`
	AddSource bool   `env:"LOG_ADD_SOURCE" envDefault:"false"`
}

// IsProduction reports whether Env names a production deployment.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "production", "prod":
		return true
	}
	return false
}

// NewFromConfig builds a logger tagged with service and env.
// opts are applied after the config.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, error) {
	level, format := slog.LevelDebug, FormatText
	if cfg.IsProduction() {
		level, format = slog.LevelInfo, FormatJSON
	}

	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.Join(ErrInvalidLevel, err)
		}
	}
	if cfg.Format != "" {
		if err := format.UnmarshalText([]byte(cfg.Format)); err != nil {
			return nil, err
		}
	}

	base := []Option{
		WithLevel(level),
		WithFormat(format),
		func(s *settings) { s.addSource = cfg.AddSource },
	}
	if cfg.Service != "" {
		base = append(base, WithAttr(slog.String("service", cfg.Service)))
	}
	if cfg.Env != "" {
		base = append(base, WithAttr(slog.String("env", cfg.Env)))
	}
	return New(append(base, opts...)...), nil
}

// Option tweaks New.
type Option func(*settings)

type settings struct {
	level      slog.Leveler
	format     Format
	addSource  bool
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithLevel sets the minimum level. A *slog.LevelVar allows changing it at runtime.
func WithLevel(l slog.Leveler) Option {
	return func(s *settings) {
		if l != nil {
			s.level = l
		}
	}
}

// WithFormat picks the handler. Unknown formats keep the current one.
func WithFormat(f Format) Option {
	return func(s *settings) {
		if f == FormatJSON || f == FormatText {
			s.format = f
		}
	}
}

// WithOutput redirects records. Nil keeps stdout.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors registers extractors run on every record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name when present.
func WithContextValue(name string, key any) Option {
	if name == "" || key == nil {
		return func(*settings) {}
	}
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(key)
		if v == nil {
			return slog.Attr{}, false
		}
		return slog.Any(name, v), true
	})
}

// New builds a logger. Without options it writes JSON at info level to stdout.
func New(opts ...Option) *slog.Logger {
	s := settings{level: slog.LevelInfo, format: FormatJSON, output: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}

	handlerOpts := &slog.HandlerOptions{Level: s.level, AddSource: s.addSource}

	var h slog.Handler
	switch s.format {
	case FormatText:
		h = slog.NewTextHandler(s.output, handlerOpts)
	default:
		h = slog.NewJSONHandler(s.output, handlerOpts)
	}
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}
	return slog.New(withExtractors(h, s.extractors))
}
