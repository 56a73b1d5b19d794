package native

import (
	"encoding/gob"
	"time"

	"github.com/dmitrymomot/sesskit/pkg/session"
)

// The scs codec gob-encodes session values behind interface{}, so every
// concrete type stored that way must be registered.
func init() {
	gob.Register(session.FlashState{})
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register(time.Time{})
}
