package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakePusher is a registry entry that records deliveries and kicks.
type fakePusher struct {
	userID int64
	open   bool

	mu         sync.Mutex
	events     []OutboundEvent
	sendErr    error
	kickReason string
	kicked     bool
}

func (f *fakePusher) UserID() int64 { return f.userID }

func (f *fakePusher) IsOpen() bool { return f.open }

func (f *fakePusher) SendEvent(evt OutboundEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.events = append(f.events, evt)
	return nil
}

func (f *fakePusher) Kick(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicked = true
	f.kickReason = reason
}

func (f *fakePusher) sentEvents() []OutboundEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]OutboundEvent(nil), f.events...)
}

func TestRegistry_Register_EmptySlot(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	p := &fakePusher{userID: 1, open: true}

	evicted := registry.Register(p)

	req.Nil(evicted)
	req.Equal(1, registry.Len())

	got, ok := registry.Lookup(1)
	req.True(ok)
	req.Same(p, got.(*fakePusher))
}

func TestRegistry_Register_ReplacesPrevious(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	first := &fakePusher{userID: 1, open: true}
	second := &fakePusher{userID: 1, open: true}

	req.Nil(registry.Register(first))

	// A second registration for the same user evicts the first.
	evicted := registry.Register(second)
	req.Same(first, evicted.(*fakePusher))
	req.Equal(1, registry.Len())

	got, ok := registry.Lookup(1)
	req.True(ok)
	req.Same(second, got.(*fakePusher))
}

func TestRegistry_Register_SameSessionTwice(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	p := &fakePusher{userID: 1, open: true}

	req.Nil(registry.Register(p))
	req.Nil(registry.Register(p))
	req.Equal(1, registry.Len())
}

func TestRegistry_Unregister_IdentityChecked(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	first := &fakePusher{userID: 1, open: true}
	second := &fakePusher{userID: 1, open: true}

	registry.Register(first)
	registry.Register(second)

	// The evicted session's cleanup must not remove its replacement.
	registry.Unregister(first)

	got, ok := registry.Lookup(1)
	req.True(ok)
	req.Same(second, got.(*fakePusher))

	// The current session removes itself normally.
	registry.Unregister(second)
	_, ok = registry.Lookup(1)
	req.False(ok)
	req.Equal(0, registry.Len())
}

func TestRegistry_Unregister_AbsentEntry(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	p := &fakePusher{userID: 42, open: true}

	registry.Unregister(p)
	req.Equal(0, registry.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	const users = 16
	const iterations = 100

	var wg sync.WaitGroup
	for userID := int64(1); userID <= users; userID++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				p := &fakePusher{userID: userID, open: true}
				registry.Register(p)
				registry.Lookup(userID)
				registry.Unregister(p)
			}
		}(userID)
	}
	wg.Wait()

	req.Equal(0, registry.Len())
}
