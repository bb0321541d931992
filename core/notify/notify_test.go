package notify_test

import (
	"runtime"
	"testing"
	"time"

	"langusta/core/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screen struct {
	name    string
	renders int
	pad     [64]byte
}

func (s *screen) render() { s.renders++ }

func TestNotifier_Order(t *testing.T) {
	n := notify.New()

	var calls []int
	n.Subscribe(func() { calls = append(calls, 1) })
	n.Subscribe(func() { calls = append(calls, 2) })
	n.Subscribe(func() { calls = append(calls, 3) })

	n.Notify()
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := notify.New()

	count := 0
	token := n.Subscribe(func() { count++ })
	n.Notify()

	assert.True(t, n.Unsubscribe(token))
	assert.False(t, n.Unsubscribe(token))
	n.Notify()

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, n.Len())
}

func TestNotifier_UnsubscribeOwner(t *testing.T) {
	n := notify.New()
	a := &screen{name: "a"}
	b := &screen{name: "b"}

	var calls []string
	notify.SubscribeOwner(n, a, func(*screen) { calls = append(calls, "a1") })
	notify.SubscribeOwner(n, b, func(s *screen) { calls = append(calls, s.name) })
	notify.SubscribeOwner(n, a, func(*screen) { calls = append(calls, "a2") })

	assert.Equal(t, 2, notify.UnsubscribeOwner(n, a))
	n.Notify()

	assert.Equal(t, []string{"b"}, calls)
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
}

func TestNotifier_OwnerReceivesNotification(t *testing.T) {
	n := notify.New()
	owner := &screen{name: "main"}

	notify.SubscribeOwner(n, owner, (*screen).render)
	n.Notify()
	n.Notify()

	assert.Equal(t, 2, owner.renders)
}

func TestNotifier_OwnerCollected(t *testing.T) {
	n := notify.New()

	collected := make(chan struct{})
	subscribeTransient(n, collected)
	n.Subscribe(func() {})

	require.Eventually(t, func() bool {
		runtime.GC()
		select {
		case <-collected:
			return n.Len() == 1
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	n.Notify()
	assert.Equal(t, 1, n.Len())
}

// subscribeTransient registers a callback that mutates its owner; the owner becomes unreachable
// on return and closes collected once the runtime reclaims it.
func subscribeTransient(n *notify.Notifier, collected chan struct{}) {
	owner := &screen{name: "transient"}
	runtime.AddCleanup(owner, func(ch chan struct{}) { close(ch) }, collected)
	notify.SubscribeOwner(n, owner, func(s *screen) { s.render() })
	n.Notify()
}

func TestNotifier_ReentrantMutation(t *testing.T) {
	n := notify.New()

	var calls []string
	var second notify.Token
	n.Subscribe(func() {
		calls = append(calls, "first")
		n.Unsubscribe(second)
		n.Subscribe(func() { calls = append(calls, "late") })
	})
	second = n.Subscribe(func() { calls = append(calls, "second") })

	// The snapshot taken before iterating still includes "second".
	n.Notify()
	assert.Equal(t, []string{"first", "second"}, calls)

	calls = nil
	n.Notify()
	assert.Equal(t, []string{"first", "late"}, calls)
}
