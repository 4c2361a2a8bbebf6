package session

import (
	"sync"
	"time"
)

// ClockAmbient derives the ambient color scheme from the wall clock:
// dark from darkFrom until darkUntil, local time. It polls once a minute
// and notifies subscribers on every flip.
type ClockAmbient struct {
	mu        sync.Mutex
	darkFrom  int
	darkUntil int
	now       func() time.Time
	subs      map[int]func(dark bool)
	nextID    int
	last      bool
	quit      chan struct{}
	once      sync.Once
}

// NewClockAmbient starts the polling loop. Hours are 0-23; the dark
// window wraps midnight when darkFrom > darkUntil.
func NewClockAmbient(darkFrom, darkUntil int) *ClockAmbient {
	a := &ClockAmbient{
		darkFrom:  darkFrom,
		darkUntil: darkUntil,
		now:       time.Now,
		subs:      map[int]func(dark bool){},
		quit:      make(chan struct{}),
	}
	a.last = a.Dark()

	go a.poll()

	return a
}

func (a *ClockAmbient) poll() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return
		case <-ticker.C:
			dark := a.Dark()

			a.mu.Lock()
			if dark == a.last {
				a.mu.Unlock()
				continue
			}
			a.last = dark
			fns := make([]func(dark bool), 0, len(a.subs))
			for _, fn := range a.subs {
				fns = append(fns, fn)
			}
			a.mu.Unlock()

			for _, fn := range fns {
				fn(dark)
			}
		}
	}
}

func (a *ClockAmbient) Dark() bool {
	hour := a.now().Hour()
	if a.darkFrom > a.darkUntil {
		return hour >= a.darkFrom || hour < a.darkUntil
	}
	return hour >= a.darkFrom && hour < a.darkUntil
}

func (a *ClockAmbient) Subscribe(fn func(dark bool)) (cancel func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextID
	a.nextID++
	a.subs[id] = fn

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, id)
	}
}

// Close stops the polling loop.
func (a *ClockAmbient) Close() {
	a.once.Do(func() { close(a.quit) })
}
