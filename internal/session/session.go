package session

import (
	"context"

	"github.com/repae-esatic/gateway/internal/infra/kv"
)

// Session bundles the per-client state with an explicit lifecycle. It is
// passed to call sites as a dependency, created with New and torn down
// with Reset.
type Session struct {
	Theme  *Theme
	Toasts *Toasts
	User   *CurrentUser
}

func New(ctx context.Context, store kv.Store, ambient AmbientSignal, source MemberSource) *Session {
	return &Session{
		Theme:  NewTheme(ctx, store, ambient),
		Toasts: NewToasts(),
		User:   NewCurrentUser(source, store),
	}
}

// Reset clears everything that belongs to the logged-in member. The theme
// preference survives: it is a device preference, not an account one.
func (s *Session) Reset(ctx context.Context) {
	s.User.Logout(ctx)
	s.Toasts.Clear()
}
