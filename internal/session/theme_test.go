package session

import (
	"context"
	"testing"

	"github.com/repae-esatic/gateway/internal/domain"
	"github.com/repae-esatic/gateway/internal/infra/kv"
)

type fakeAmbient struct {
	dark bool
	subs []func(dark bool)
}

func (f *fakeAmbient) Dark() bool { return f.dark }

func (f *fakeAmbient) Subscribe(fn func(dark bool)) (cancel func()) {
	f.subs = append(f.subs, fn)
	return func() {}
}

func (f *fakeAmbient) flip(dark bool) {
	f.dark = dark
	for _, fn := range f.subs {
		fn(dark)
	}
}

func TestThemeDefaultsToSystem(t *testing.T) {
	ctx := context.Background()
	ambient := &fakeAmbient{dark: true}
	theme := NewTheme(ctx, kv.NewMemory(), ambient)

	if theme.Mode() != ThemeSystem {
		t.Fatalf("expected system got %s", theme.Mode())
	}
	if !theme.IsDark() {
		t.Fatalf("expected dark, the ambient signal is dark")
	}
}

func TestThemeUnknownPersistedValueFallsBackToSystem(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	store.Set(ctx, domain.ThemeKey, "sepia")

	theme := NewTheme(ctx, store, &fakeAmbient{})
	if theme.Mode() != ThemeSystem {
		t.Fatalf("expected system got %s", theme.Mode())
	}
}

func TestThemeRestoresPersistedMode(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	store.Set(ctx, domain.ThemeKey, string(ThemeDark))

	theme := NewTheme(ctx, store, &fakeAmbient{dark: false})
	if theme.Mode() != ThemeDark || !theme.IsDark() {
		t.Fatalf("expected restored dark mode, got %s/%v", theme.Mode(), theme.IsDark())
	}
}

func TestThemeSetModePersistsSynchronously(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	theme := NewTheme(ctx, store, &fakeAmbient{})

	theme.SetMode(ctx, ThemeLight)

	saved, err := store.Get(ctx, domain.ThemeKey)
	if err != nil || saved != string(ThemeLight) {
		t.Fatalf("expected light persisted got %q (%v)", saved, err)
	}

	theme.SetMode(ctx, "sepia")
	if theme.Mode() != ThemeLight {
		t.Fatalf("unknown mode must be rejected, got %s", theme.Mode())
	}
}

func TestThemeFollowsAmbientOnlyInSystemMode(t *testing.T) {
	ctx := context.Background()
	ambient := &fakeAmbient{dark: false}
	theme := NewTheme(ctx, kv.NewMemory(), ambient)

	ambient.flip(true)
	if !theme.IsDark() {
		t.Fatalf("system mode must follow the ambient signal")
	}

	theme.SetMode(ctx, ThemeLight)
	ambient.flip(false)
	ambient.flip(true)
	if theme.IsDark() {
		t.Fatalf("an explicit mode must ignore the ambient signal")
	}
}

func TestThemeToggleFromExplicitModes(t *testing.T) {
	ctx := context.Background()
	theme := NewTheme(ctx, kv.NewMemory(), &fakeAmbient{})

	theme.SetMode(ctx, ThemeDark)
	theme.Toggle(ctx)
	if theme.Mode() != ThemeLight {
		t.Fatalf("expected light got %s", theme.Mode())
	}
	theme.Toggle(ctx)
	if theme.Mode() != ThemeDark {
		t.Fatalf("expected dark got %s", theme.Mode())
	}
}

func TestThemeToggleFromSystemUsesEffectiveState(t *testing.T) {
	ctx := context.Background()

	theme := NewTheme(ctx, kv.NewMemory(), &fakeAmbient{dark: true})
	theme.Toggle(ctx)
	if theme.Mode() != ThemeLight {
		t.Fatalf("system rendering dark must toggle to light, got %s", theme.Mode())
	}

	theme = NewTheme(ctx, kv.NewMemory(), &fakeAmbient{dark: false})
	theme.Toggle(ctx)
	if theme.Mode() != ThemeDark {
		t.Fatalf("system rendering light must toggle to dark, got %s", theme.Mode())
	}
}
