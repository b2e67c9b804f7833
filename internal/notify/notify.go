// Package notify carries transient user notifications (toasts).
//
// Views receive a Notifier instead of writing to a global, so each view can be
// exercised with a Recorder in tests and a Toaster in the terminal UI.
package notify

import (
	"sync"
	"time"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notifier is the write side of the notification channel.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Toast struct {
	Level   Level
	Message string
	Expires time.Time
}

// Toaster keeps the most recent toasts until their TTL runs out.
// It is safe for concurrent use.
type Toaster struct {
	mu     sync.Mutex
	ttl    time.Duration
	max    int
	now    func() time.Time
	toasts []Toast
}

const defaultMaxToasts = 3

func NewToaster(ttl time.Duration) *Toaster {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Toaster{ttl: ttl, max: defaultMaxToasts, now: time.Now}
}

func (t *Toaster) Success(msg string) { t.push(LevelSuccess, msg) }
func (t *Toaster) Error(msg string)   { t.push(LevelError, msg) }

func (t *Toaster) push(l Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, Toast{Level: l, Message: msg, Expires: t.now().Add(t.ttl)})
	if len(t.toasts) > t.max {
		t.toasts = t.toasts[len(t.toasts)-t.max:]
	}
}

// Active drops expired toasts and returns the rest, oldest first.
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	kept := t.toasts[:0]
	for _, ts := range t.toasts {
		if now.Before(ts.Expires) {
			kept = append(kept, ts)
		}
	}
	t.toasts = kept
	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

func (t *Toaster) TTL() time.Duration { return t.ttl }

// Recorder remembers every notification; used by tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Toast
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(l Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Toast{Level: l, Message: msg})
}

func (r *Recorder) Entries() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Toast{}, false
	}
	return r.entries[len(r.entries)-1], true
}
