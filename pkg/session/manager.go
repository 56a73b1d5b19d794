package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sesskit/core"
	"github.com/dmitrymomot/sesskit/pkg/logger"
)

// Manager binds a store Provider to the request pipeline.
type Manager struct {
	provider     Provider
	logger       *slog.Logger
	errorHandler ErrorHandler
}

// NewManager creates a manager. A provider is required, either through
// WithProvider or WithStore.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.provider == nil {
		return nil, ErrNoProvider
	}
	m.logger = m.logger.With(logger.Component("session"))
	return m, nil
}

// Open returns an unstarted Session for the request.
func (m *Manager) Open(w http.ResponseWriter, r *http.Request) *Session {
	return New(m.provider.Open(w, r))
}

// Load opens and starts a Session for the request.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	s := m.Open(w, r)
	if err := s.Start(r.Context()); err != nil {
		return nil, err
	}
	return s, nil
}

// save persists s and logs failures. Data written after the response
// headers are sent cannot reach cookie-backed stores.
func (m *Manager) save(ctx context.Context, s *Session) error {
	if err := s.Save(ctx); err != nil {
		m.logger.ErrorContext(ctx, "failed to save session", logger.Error(err))
		return err
	}
	return nil
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrStoreStart) || errors.Is(err, ErrStoreRead) || errors.Is(err, ErrStoreWrite) {
		err = errors.Join(core.ErrInternalServerError, err)
	}
	core.WriteError(w, r, err)
}
