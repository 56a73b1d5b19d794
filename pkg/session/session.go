package session

import (
	"context"
	"errors"
	"maps"
)

// Session is the request-scoped view over a Store.
// It owns flash aging, dirty tracking and save semantics.
// A Session is not safe for concurrent use; one request drives it sequentially.
type Session struct {
	store    Store
	data     map[string]any
	started  bool
	aged     bool
	modified bool
}

// New creates a Session layered over store. Nothing is loaded until Start.
func New(store Store) *Session {
	return &Session{
		store: store,
		data:  make(map[string]any),
	}
}

// Store returns the underlying store.
func (s *Session) Store() Store {
	return s.store
}

// Start loads the session from the store. It is idempotent: flash data
// ages exactly once per activation, including when a store that closed
// itself on Write is reopened.
func (s *Session) Start(ctx context.Context) error {
	if s.store.IsStarted() {
		if s.started {
			return nil
		}
		return s.load(ctx)
	}

	if err := s.store.Start(ctx); err != nil {
		return errors.Join(ErrStoreStart, err)
	}
	return s.load(ctx)
}

func (s *Session) load(ctx context.Context) error {
	data, err := s.store.Read(ctx)
	if err != nil {
		return errors.Join(ErrStoreRead, err)
	}

	s.data = make(map[string]any, len(data))
	maps.Copy(s.data, data)
	s.started = true

	if !s.aged {
		s.ageFlash()
		s.aged = true
	}
	return nil
}

// ageFlash drops keys flashed two activations ago and shifts the
// current flash keys into the old slot.
func (s *Session) ageFlash() {
	state := flashStateOf(s.data[FlashKey])
	for _, key := range state.Old {
		if _, ok := s.data[key]; ok {
			delete(s.data, key)
			s.modified = true
		}
	}
	state.Old = state.New
	state.New = []string{}
	s.data[FlashKey] = state
}

// IsStarted reports whether the session or its store is active.
func (s *Session) IsStarted() bool {
	return s.started || s.store.IsStarted()
}

// ID returns the store's session identifier when it exposes one.
func (s *Session) ID() string {
	if id, ok := s.store.(Identifier); ok {
		return id.ID()
	}
	return ""
}

// All returns a copy of the session data, flash bookkeeping included.
func (s *Session) All() map[string]any {
	out := make(map[string]any, len(s.data))
	maps.Copy(out, s.data)
	if _, ok := out[FlashKey]; ok {
		out[FlashKey] = s.flash()
	}
	return out
}

// Get returns the value under key or def when absent.
func (s *Session) Get(key string, def any) any {
	if v, ok := s.data[key]; ok {
		return v
	}
	return def
}

// Lookup returns the value under key and whether it was present.
func (s *Session) Lookup(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Lookup(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Lookup(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Lookup(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	s.data[key] = value
	s.modified = true
}

// Forget removes key and purges it from flash bookkeeping.
func (s *Session) Forget(key string) {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.modified = true
	}
	if _, ok := s.data[FlashKey]; !ok {
		return
	}
	state := s.flash()
	state.remove(key)
	s.data[FlashKey] = state
}

// Clear empties the session data including flash bookkeeping.
// The store keeps its started state.
func (s *Session) Clear() {
	s.data = make(map[string]any)
	s.modified = true
}

// Flash stores value under key for the current and the next activation.
func (s *Session) Flash(key string, value any) {
	s.Set(key, value)
	state := s.flash()
	state.add(key)
	s.data[FlashKey] = state
}

// GetFlash is Get for flashed keys.
func (s *Session) GetFlash(key string, def any) any {
	return s.Get(key, def)
}

// Pull returns the value under key and forgets it.
func (s *Session) Pull(key string, def any) any {
	v := s.Get(key, def)
	s.Forget(key)
	return v
}

// IsModified reports whether data changed since the last start or save.
func (s *Session) IsModified() bool {
	return s.modified
}

// Save writes the data back to the store. Without a prior start it does nothing.
func (s *Session) Save(ctx context.Context) error {
	if !s.started {
		return nil
	}
	if err := s.store.Write(ctx, s.All()); err != nil {
		return errors.Join(ErrStoreWrite, err)
	}
	s.modified = false
	s.started = s.store.IsStarted()
	return nil
}

// Regenerate issues a new session identifier, keeping the data.
// Whether an inactive session can be regenerated is up to the store:
// MemoryStore always can, the native store returns ErrNotStarted.
func (s *Session) Regenerate(ctx context.Context, deleteOld bool) error {
	return s.store.RegenerateID(ctx, deleteOld)
}

// Destroy clears the data and removes the stored session.
func (s *Session) Destroy(ctx context.Context) error {
	s.data = make(map[string]any)
	s.modified = false
	s.started = false
	s.aged = false
	return s.store.Destroy(ctx)
}

func (s *Session) flash() FlashState {
	return flashStateOf(s.data[FlashKey])
}
