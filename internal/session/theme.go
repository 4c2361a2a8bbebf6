// Package session holds the per-client session state of the platform:
// theme preference, toast queue, and the authenticated-member cache. A
// Session is created explicitly and reset on logout; there are no package
// globals.
package session

import (
	"context"
	"sync"

	"github.com/repae-esatic/gateway/internal/domain"
	"github.com/repae-esatic/gateway/internal/infra/kv"
)

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// AmbientSignal is the platform's color-scheme signal. Subscribe returns
// an unsubscribe func.
type AmbientSignal interface {
	Dark() bool
	Subscribe(fn func(dark bool)) (cancel func())
}

// Theme manages the tri-state theme preference. In system mode the
// effective state follows the ambient signal; light and dark ignore it.
// Every change is persisted synchronously.
type Theme struct {
	mu      sync.Mutex
	store   kv.Store
	ambient AmbientSignal
	mode    ThemeMode
	dark    bool
	cancel  func()
}

// NewTheme reads the persisted preference; anything but the three known
// modes (including an absent or unreadable value) falls back to system.
func NewTheme(ctx context.Context, store kv.Store, ambient AmbientSignal) *Theme {
	t := &Theme{store: store, ambient: ambient}

	mode := ThemeSystem
	if saved, err := store.Get(ctx, domain.ThemeKey); err == nil {
		switch ThemeMode(saved) {
		case ThemeLight, ThemeDark, ThemeSystem:
			mode = ThemeMode(saved)
		}
	}
	t.apply(ctx, mode)

	t.cancel = ambient.Subscribe(func(dark bool) {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.mode == ThemeSystem {
			t.dark = dark
		}
	})

	return t
}

// apply sets the mode, re-derives the effective state, and persists.
// Callers hold no lock.
func (t *Theme) apply(ctx context.Context, mode ThemeMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = mode
	if mode == ThemeSystem {
		t.dark = t.ambient.Dark()
	} else {
		t.dark = mode == ThemeDark
	}
	t.store.Set(ctx, domain.ThemeKey, string(mode))
}

func (t *Theme) Mode() ThemeMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// IsDark reports the effective state.
func (t *Theme) IsDark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

func (t *Theme) SetMode(ctx context.Context, mode ThemeMode) {
	switch mode {
	case ThemeLight, ThemeDark, ThemeSystem:
		t.apply(ctx, mode)
	}
}

// Toggle flips the theme. From system mode it switches to the opposite of
// the current effective state, not of the nominal mode.
func (t *Theme) Toggle(ctx context.Context) {
	t.mu.Lock()
	mode, dark := t.mode, t.dark
	t.mu.Unlock()

	if mode == ThemeSystem {
		if dark {
			t.apply(ctx, ThemeLight)
		} else {
			t.apply(ctx, ThemeDark)
		}
		return
	}
	if mode == ThemeDark {
		t.apply(ctx, ThemeLight)
	} else {
		t.apply(ctx, ThemeDark)
	}
}

// Close detaches from the ambient signal.
func (t *Theme) Close() {
	if t.cancel != nil {
		t.cancel()
	}
}
