package session

import (
	"context"
	"encoding/json"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/internal/domain"
	"github.com/repae-esatic/gateway/internal/infra/kv"
)

// MemberSource is the slice of the identity service the session needs.
type MemberSource interface {
	MyAlumni(ctx context.Context) (repae.Alumni, error)
	ListNotifications(ctx context.Context, page, limit int) (repae.Page[repae.Notification], error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// CurrentUser caches the authenticated member for the lifetime of the
// session. The profile is fetched at most once; overlapping callers are
// coalesced into a single upstream call.
type CurrentUser struct {
	source MemberSource
	store  kv.Store

	mu            sync.Mutex
	flight        singleflight.Group
	alumni        *repae.Alumni
	notifications []repae.Notification
	unread        int
}

func NewCurrentUser(source MemberSource, store kv.Store) *CurrentUser {
	return &CurrentUser{source: source, store: store}
}

// EnsureLoaded fetches the profile unless it is already cached.
func (u *CurrentUser) EnsureLoaded(ctx context.Context) (repae.Alumni, error) {
	u.mu.Lock()
	if u.alumni != nil {
		a := *u.alumni
		u.mu.Unlock()
		return a, nil
	}
	u.mu.Unlock()

	v, err, _ := u.flight.Do("profile", func() (any, error) {
		a, err := u.source.MyAlumni(ctx)
		if err != nil {
			return nil, err
		}
		u.mu.Lock()
		u.alumni = &a
		u.mu.Unlock()
		if raw, err := json.Marshal(a); err == nil {
			u.store.Set(ctx, domain.MemberUserKey, string(raw))
		}
		return a, nil
	})
	if err != nil {
		return repae.Alumni{}, err
	}
	return v.(repae.Alumni), nil
}

// Cached returns the profile without fetching. The second return reports
// whether one is loaded; a corrupt stored blob counts as absent.
func (u *CurrentUser) Cached(ctx context.Context) (repae.Alumni, bool) {
	u.mu.Lock()
	if u.alumni != nil {
		a := *u.alumni
		u.mu.Unlock()
		return a, true
	}
	u.mu.Unlock()

	raw, err := u.store.Get(ctx, domain.MemberUserKey)
	if err != nil {
		return repae.Alumni{}, false
	}
	var a repae.Alumni
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return repae.Alumni{}, false
	}
	u.mu.Lock()
	u.alumni = &a
	u.mu.Unlock()
	return a, true
}

// Invalidate drops the cached profile so the next EnsureLoaded refetches.
func (u *CurrentUser) Invalidate() {
	u.mu.Lock()
	u.alumni = nil
	u.mu.Unlock()
}

// RefreshNotifications loads the latest notifications and unread count.
// Transport failures on this non-critical path degrade to an empty list
// and a zero counter.
func (u *CurrentUser) RefreshNotifications(ctx context.Context, limit int) {
	page, err := u.source.ListNotifications(ctx, 1, limit)
	u.mu.Lock()
	if err != nil {
		u.notifications = nil
	} else {
		u.notifications = page.Data
	}
	u.mu.Unlock()

	u.RefreshUnread(ctx)
}

// RefreshUnread updates only the unread counter. The cached notification
// list is left alone, so badge polling never clobbers a loaded inbox.
func (u *CurrentUser) RefreshUnread(ctx context.Context) {
	count, err := u.source.UnreadCount(ctx)
	u.mu.Lock()
	if err != nil {
		u.unread = 0
	} else {
		u.unread = count
	}
	u.mu.Unlock()
}

func (u *CurrentUser) Notifications() []repae.Notification {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]repae.Notification, len(u.notifications))
	copy(out, u.notifications)
	return out
}

func (u *CurrentUser) Unread() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.unread
}

// MarkRead forwards to the identity service and applies the change to the
// local copies without waiting for a refetch.
func (u *CurrentUser) MarkRead(ctx context.Context, id string) error {
	if err := u.source.MarkRead(ctx, id); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.notifications {
		if u.notifications[i].ID == id && !u.notifications[i].IsRead {
			u.notifications[i].IsRead = true
			if u.unread > 0 {
				u.unread--
			}
		}
	}
	return nil
}

func (u *CurrentUser) MarkAllRead(ctx context.Context) error {
	if err := u.source.MarkAllRead(ctx); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.notifications {
		u.notifications[i].IsRead = true
	}
	u.unread = 0
	return nil
}

// Logout clears the cached member, its notifications, and the member keys
// in the preference store in one call.
func (u *CurrentUser) Logout(ctx context.Context) {
	u.mu.Lock()
	u.alumni = nil
	u.notifications = nil
	u.unread = 0
	u.mu.Unlock()

	u.store.Delete(ctx, domain.MemberTokenKey)
	u.store.Delete(ctx, domain.MemberUserKey)
}
