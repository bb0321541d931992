package notify

import (
	"sync"
	"weak"
)

// Token identifies a single registration.
type Token uint64

type subscription struct {
	token Token
	// owner holds a weak.Pointer for owner-tied registrations, nil otherwise.
	owner any
	alive func() bool
	fn    func()
}

func (s subscription) live() bool {
	return s.alive == nil || s.alive()
}

// Notifier fans a signal out to registered callbacks in registration order.
type Notifier struct {
	mu   sync.Mutex
	next Token
	subs []subscription
}

// New creates an empty notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn until the returned token is unsubscribed.
func (n *Notifier) Subscribe(fn func()) Token {
	return n.add(subscription{fn: fn})
}

// SubscribeOwner registers fn for as long as owner is alive or until UnsubscribeOwner is called.
// fn receives the owner on each notification, so it never needs to capture it.
func SubscribeOwner[T any](n *Notifier, owner *T, fn func(owner *T)) Token {
	wp := weak.Make(owner)
	return n.add(subscription{
		owner: wp,
		alive: func() bool { return wp.Value() != nil },
		fn: func() {
			if o := wp.Value(); o != nil {
				fn(o)
			}
		},
	})
}

// Unsubscribe removes the registration for token. It reports whether one was removed.
func (n *Notifier) Unsubscribe(token Token) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subs {
		if s.token == token {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return true
		}
	}
	return false
}

// UnsubscribeOwner removes every registration tied to owner and returns how many were removed.
func UnsubscribeOwner[T any](n *Notifier, owner *T) int {
	key := any(weak.Make(owner))

	n.mu.Lock()
	defer n.mu.Unlock()

	kept := make([]subscription, 0, len(n.subs))
	for _, s := range n.subs {
		if s.owner != nil && s.owner == key {
			continue
		}
		kept = append(kept, s)
	}
	removed := len(n.subs) - len(kept)
	n.subs = kept
	return removed
}

// Notify invokes all live callbacks synchronously on the calling goroutine.
func (n *Notifier) Notify() {
	for _, fn := range n.snapshot() {
		fn()
	}
}

// Len returns the number of live registrations.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	count := 0
	for _, s := range n.subs {
		if s.live() {
			count++
		}
	}
	return count
}

// snapshot prunes dead registrations and copies the live callbacks.
func (n *Notifier) snapshot() []func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	fns := make([]func(), 0, len(n.subs))
	kept := n.subs[:0]
	for _, s := range n.subs {
		if !s.live() {
			continue
		}
		kept = append(kept, s)
		fns = append(fns, s.fn)
	}
	clear(n.subs[len(kept):])
	n.subs = kept
	return fns
}

func (n *Notifier) add(s subscription) Token {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.next++
	s.token = n.next
	n.subs = append(n.subs, s)
	return s.token
}
