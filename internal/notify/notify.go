// Package notify holds the single-slot user-facing message every component
// reports through instead of surfacing errors across boundaries.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID      uint64
	Kind    Kind
	Message string
}

// Notifier keeps at most one live notification. Showing a new message
// replaces the current one and re-arms the expiry timer; an expiry only
// clears the slot if nothing replaced it in the meantime.
type Notifier struct {
	mu   sync.Mutex
	cur  *Notification
	gen  uint64
	ttl  time.Duration
	subs []func(*Notification)
}

const DefaultTTL = 2500 * time.Millisecond

func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

func (n *Notifier) Success(message string) { n.show(KindSuccess, message) }
func (n *Notifier) Error(message string)   { n.show(KindError, message) }

func (n *Notifier) show(kind Kind, message string) {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.cur = &Notification{ID: gen, Kind: kind, Message: message}
	cur := n.cur
	subs := make([]func(*Notification), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		if n.gen == gen {
			n.cur = nil
		}
		n.mu.Unlock()
	})

	for _, fn := range subs {
		fn(cur)
	}
}

// Current returns the live notification, or nil when the slot is empty.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cur
}

// Subscribe registers a callback invoked on every shown notification.
// Callbacks run on the caller's goroutine and must not block.
func (n *Notifier) Subscribe(fn func(*Notification)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}
