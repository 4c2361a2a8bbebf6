package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/internal/domain"
	"github.com/repae-esatic/gateway/internal/infra/kv"
)

type mockMemberSource struct {
	alumni        repae.Alumni
	alumniErr     error
	fetches       atomic.Int32
	notifications []repae.Notification
	notifErr      error
	unread        int
	markedRead    []string
	markedAll     bool
}

func (m *mockMemberSource) MyAlumni(ctx context.Context) (repae.Alumni, error) {
	m.fetches.Add(1)
	if m.alumniErr != nil {
		return repae.Alumni{}, m.alumniErr
	}
	return m.alumni, nil
}

func (m *mockMemberSource) ListNotifications(ctx context.Context, page, limit int) (repae.Page[repae.Notification], error) {
	if m.notifErr != nil {
		return repae.Page[repae.Notification]{}, m.notifErr
	}
	return repae.Page[repae.Notification]{Data: m.notifications, Total: len(m.notifications)}, nil
}

func (m *mockMemberSource) UnreadCount(ctx context.Context) (int, error) {
	if m.notifErr != nil {
		return 0, m.notifErr
	}
	return m.unread, nil
}

func (m *mockMemberSource) MarkRead(ctx context.Context, id string) error {
	m.markedRead = append(m.markedRead, id)
	return nil
}

func (m *mockMemberSource) MarkAllRead(ctx context.Context) error {
	m.markedAll = true
	return nil
}

func TestEnsureLoadedFetchesOnce(t *testing.T) {
	source := &mockMemberSource{alumni: repae.Alumni{ID: "a1", FirstName: "Awa"}}
	user := NewCurrentUser(source, kv.NewMemory())
	ctx := context.Background()

	a, err := user.EnsureLoaded(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if a.ID != "a1" {
		t.Fatalf("unexpected alumni %+v", a)
	}

	user.EnsureLoaded(ctx)
	user.EnsureLoaded(ctx)
	if n := source.fetches.Load(); n != 1 {
		t.Fatalf("expected 1 upstream fetch got %d", n)
	}
}

func TestEnsureLoadedCoalescesConcurrentCallers(t *testing.T) {
	source := &mockMemberSource{alumni: repae.Alumni{ID: "a1"}}
	user := NewCurrentUser(source, kv.NewMemory())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user.EnsureLoaded(ctx)
		}()
	}
	wg.Wait()

	if n := source.fetches.Load(); n != 1 {
		t.Fatalf("expected concurrent callers coalesced into 1 fetch got %d", n)
	}
}

func TestEnsureLoadedPersistsAndCachedRestores(t *testing.T) {
	store := kv.NewMemory()
	source := &mockMemberSource{alumni: repae.Alumni{ID: "a1", FirstName: "Awa"}}
	user := NewCurrentUser(source, store)
	ctx := context.Background()

	if _, err := user.EnsureLoaded(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// A fresh session over the same store restores without a fetch.
	restored := NewCurrentUser(&mockMemberSource{alumniErr: errors.New("down")}, store)
	a, ok := restored.Cached(ctx)
	if !ok || a.ID != "a1" {
		t.Fatalf("expected restored profile got %+v (%v)", a, ok)
	}
}

func TestCachedCorruptBlobCountsAsAbsent(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	store.Set(ctx, domain.MemberUserKey, "{not json")

	user := NewCurrentUser(&mockMemberSource{}, store)
	if _, ok := user.Cached(ctx); ok {
		t.Fatalf("corrupt stored profile must count as absent")
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	source := &mockMemberSource{alumni: repae.Alumni{ID: "a1"}}
	user := NewCurrentUser(source, kv.NewMemory())
	ctx := context.Background()

	user.EnsureLoaded(ctx)
	user.Invalidate()
	user.EnsureLoaded(ctx)

	if n := source.fetches.Load(); n != 2 {
		t.Fatalf("expected refetch after invalidate got %d", n)
	}
}

func TestRefreshNotificationsDegradesOnError(t *testing.T) {
	source := &mockMemberSource{notifErr: errors.New("identity down")}
	user := NewCurrentUser(source, kv.NewMemory())

	user.RefreshNotifications(context.Background(), 10)
	if len(user.Notifications()) != 0 || user.Unread() != 0 {
		t.Fatalf("expected empty state on failure")
	}
}

func TestRefreshUnreadKeepsNotificationList(t *testing.T) {
	source := &mockMemberSource{
		notifications: []repae.Notification{{ID: "n1"}, {ID: "n2"}},
		unread:        2,
	}
	user := NewCurrentUser(source, kv.NewMemory())
	ctx := context.Background()

	user.RefreshNotifications(ctx, 10)

	source.unread = 3
	user.RefreshUnread(ctx)

	if user.Unread() != 3 {
		t.Fatalf("expected unread 3 got %d", user.Unread())
	}
	if len(user.Notifications()) != 2 {
		t.Fatalf("a counter refresh must not touch the loaded list, got %d", len(user.Notifications()))
	}
}

func TestMarkReadAppliesLocally(t *testing.T) {
	source := &mockMemberSource{
		notifications: []repae.Notification{
			{ID: "n1", IsRead: false},
			{ID: "n2", IsRead: false},
		},
		unread: 2,
	}
	user := NewCurrentUser(source, kv.NewMemory())
	ctx := context.Background()

	user.RefreshNotifications(ctx, 10)
	if err := user.MarkRead(ctx, "n1"); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	if len(source.markedRead) != 1 || source.markedRead[0] != "n1" {
		t.Fatalf("expected upstream call got %v", source.markedRead)
	}
	if user.Unread() != 1 {
		t.Fatalf("expected unread 1 got %d", user.Unread())
	}
	for _, n := range user.Notifications() {
		if n.ID == "n1" && !n.IsRead {
			t.Fatalf("expected n1 read locally")
		}
	}

	// Marking again must not drive the counter below the truth.
	user.MarkRead(ctx, "n1")
	if user.Unread() != 1 {
		t.Fatalf("expected unread unchanged got %d", user.Unread())
	}
}

func TestMarkAllRead(t *testing.T) {
	source := &mockMemberSource{
		notifications: []repae.Notification{{ID: "n1"}, {ID: "n2"}},
		unread:        2,
	}
	user := NewCurrentUser(source, kv.NewMemory())
	ctx := context.Background()

	user.RefreshNotifications(ctx, 10)
	if err := user.MarkAllRead(ctx); err != nil {
		t.Fatalf("mark all failed: %v", err)
	}
	if !source.markedAll {
		t.Fatalf("expected upstream call")
	}
	if user.Unread() != 0 {
		t.Fatalf("expected unread 0 got %d", user.Unread())
	}
	for _, n := range user.Notifications() {
		if !n.IsRead {
			t.Fatalf("expected everything read, got %+v", n)
		}
	}
}

func TestLogoutClearsStateAndStoreKeys(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	store.Set(ctx, domain.MemberTokenKey, "jwt")

	source := &mockMemberSource{
		alumni:        repae.Alumni{ID: "a1"},
		notifications: []repae.Notification{{ID: "n1"}},
		unread:        1,
	}
	user := NewCurrentUser(source, store)
	user.EnsureLoaded(ctx)
	user.RefreshNotifications(ctx, 10)

	user.Logout(ctx)

	if len(user.Notifications()) != 0 || user.Unread() != 0 {
		t.Fatalf("expected notifications cleared")
	}
	if _, err := store.Get(ctx, domain.MemberTokenKey); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected token key deleted got %v", err)
	}
	if _, err := store.Get(ctx, domain.MemberUserKey); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected user key deleted got %v", err)
	}
}
