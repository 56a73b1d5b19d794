package native

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/sesskit/pkg/cookie"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

// Store is a session.Store bound to one request. It closes itself after
// every Write.
type Store struct {
	provider *Provider
	w        http.ResponseWriter
	r        *http.Request

	ctx     context.Context
	token   string
	started bool
}

var (
	_ session.Store      = (*Store)(nil)
	_ session.Identifier = (*Store)(nil)
)

// Start loads the record for the request token. Unknown tokens are never
// adopted in strict mode; a fresh token is issued on the next Write.
func (s *Store) Start(ctx context.Context) error {
	if s.started {
		return nil
	}

	m := s.provider.manager
	loaded, err := m.Load(ctx, s.token)
	if err != nil {
		return err
	}

	if s.token != "" && m.Token(loaded) == "" {
		if s.provider.cfg.StrictMode {
			s.provider.logger.DebugContext(ctx, "unknown session id ignored", logger.Request(s.r))
			s.token = ""
		} else if loaded, err = s.adopt(ctx); err != nil {
			return err
		}
	}

	s.ctx = loaded
	s.started = true
	return nil
}

// adopt creates an empty record under the client supplied token.
func (s *Store) adopt(ctx context.Context) (context.Context, error) {
	m := s.provider.manager
	expiry := time.Now().Add(m.Lifetime)

	b, err := m.Codec.Encode(expiry, map[string]any{})
	if err != nil {
		return nil, errors.Join(ErrAdoptID, err)
	}
	if err := m.Store.Commit(s.token, b, expiry); err != nil {
		return nil, errors.Join(ErrAdoptID, err)
	}
	return m.Load(ctx, s.token)
}

// IsStarted reports whether a record is loaded.
func (s *Store) IsStarted() bool {
	return s.started
}

// Read returns the loaded values.
func (s *Store) Read(ctx context.Context) (map[string]any, error) {
	if !s.started {
		return nil, session.ErrNotStarted
	}
	return s.values(), nil
}

func (s *Store) values() map[string]any {
	m := s.provider.manager
	keys := m.Keys(s.ctx)
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = m.Get(s.ctx, k)
	}
	return out
}

// Write replaces the values, commits the record, sends the session cookie
// and closes the store. Writes while closed are ignored.
func (s *Store) Write(ctx context.Context, data map[string]any) error {
	if !s.started {
		return nil
	}

	m := s.provider.manager
	if err := m.Clear(s.ctx); err != nil {
		return err
	}
	for k, v := range data {
		m.Put(s.ctx, k, v)
	}

	token, _, err := m.Commit(s.ctx)
	if err != nil {
		return err
	}

	s.token = token
	s.started = false

	if s.provider.cfg.UseCookies {
		cookie.Emit(s.w, s.r, cookie.New(s.provider.cfg.Name, token, s.provider.cfg.CookieOptions()...))
	}
	return nil
}

// RegenerateID issues a new token. Unless deleteOld is set the record under
// the previous token stays valid with the current values.
func (s *Store) RegenerateID(ctx context.Context, deleteOld bool) error {
	if !s.started {
		return session.ErrNotStarted
	}

	m := s.provider.manager
	old := m.Token(s.ctx)

	var (
		snapshot []byte
		deadline time.Time
	)
	if !deleteOld && old != "" {
		deadline = m.Deadline(s.ctx)
		b, err := m.Codec.Encode(deadline, s.values())
		if err != nil {
			return err
		}
		snapshot = b
	}

	if err := m.RenewToken(s.ctx); err != nil {
		return err
	}

	if snapshot != nil {
		return m.Store.Commit(old, snapshot, deadline)
	}
	return nil
}

// Destroy deletes the record and expires the session cookie.
func (s *Store) Destroy(ctx context.Context) error {
	m := s.provider.manager

	var err error
	switch {
	case s.started:
		err = m.Destroy(s.ctx)
	case s.token != "":
		err = m.Store.Delete(s.token)
	}

	s.started = false
	s.token = ""

	if s.provider.cfg.UseCookies {
		cookie.Emit(s.w, s.r, cookie.Expired(s.provider.cfg.Name, s.provider.cfg.CookieOptions()...))
	}
	return err
}

// ID returns the current token, empty until the first commit.
func (s *Store) ID() string {
	if s.started {
		if token := s.provider.manager.Token(s.ctx); token != "" {
			return token
		}
	}
	return s.token
}
