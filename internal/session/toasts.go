package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Per-severity default lifetimes. Errors stay longer.
const (
	defaultToastTTL = 5 * time.Second
	errorToastTTL   = 8 * time.Second
)

type Toast struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message,omitempty"`
	// Duration 0 means the toast never expires on its own. The
	// convenience constructors fill in the per-severity default.
	Duration time.Duration `json:"-"`
}

// DefaultTTL returns the default lifetime for a severity.
func DefaultTTL(s Severity) time.Duration {
	if s == SeverityError {
		return errorToastTTL
	}
	return defaultToastTTL
}

// Toasts is the append-only notification queue with auto-expiry. The
// scheduler is injectable so tests can drive expiry deterministically.
type Toasts struct {
	mu       sync.Mutex
	items    []Toast
	timers   map[string]func()
	schedule func(d time.Duration, fn func()) (cancel func())
}

func NewToasts() *Toasts {
	return &Toasts{
		timers: make(map[string]func()),
		schedule: func(d time.Duration, fn func()) func() {
			timer := time.AfterFunc(d, fn)
			return func() { timer.Stop() }
		},
	}
}

// NewToastsWithScheduler is the test constructor.
func NewToastsWithScheduler(schedule func(d time.Duration, fn func()) (cancel func())) *Toasts {
	return &Toasts{
		timers:   make(map[string]func()),
		schedule: schedule,
	}
}

// Add queues a toast and returns its opaque id. A positive Duration arms
// the expiry timer; zero or negative leaves the toast until removed.
func (t *Toasts) Add(toast Toast) string {
	toast.ID = uuid.NewString()

	t.mu.Lock()
	t.items = append(t.items, toast)
	if toast.Duration > 0 {
		id := toast.ID
		t.timers[id] = t.schedule(toast.Duration, func() { t.Remove(id) })
	}
	t.mu.Unlock()

	return toast.ID
}

func (t *Toasts) Success(title, message string) string {
	return t.Add(Toast{Severity: SeveritySuccess, Title: title, Message: message, Duration: DefaultTTL(SeveritySuccess)})
}

func (t *Toasts) Error(title, message string) string {
	return t.Add(Toast{Severity: SeverityError, Title: title, Message: message, Duration: DefaultTTL(SeverityError)})
}

func (t *Toasts) Warning(title, message string) string {
	return t.Add(Toast{Severity: SeverityWarning, Title: title, Message: message, Duration: DefaultTTL(SeverityWarning)})
}

func (t *Toasts) Info(title, message string) string {
	return t.Add(Toast{Severity: SeverityInfo, Title: title, Message: message, Duration: DefaultTTL(SeverityInfo)})
}

// Remove is idempotent; removing an unknown id is a no-op.
func (t *Toasts) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cancel, ok := t.timers[id]; ok {
		cancel()
		delete(t.timers, id)
	}
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

func (t *Toasts) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, cancel := range t.timers {
		cancel()
	}
	t.timers = make(map[string]func())
	t.items = nil
}

// List returns a snapshot in insertion order.
func (t *Toasts) List() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Toast, len(t.items))
	copy(out, t.items)
	return out
}
