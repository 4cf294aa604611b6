/*
Package chat contains the real-time direct messaging core.

This file defines the Registry, the process-wide mapping from user id to that
user's live socket session. It is the single synchronization boundary for the
mapping: all of its operations are safe to call from any session's goroutine
without external locking, and none of them perform I/O or block on a peer.
*/
package chat

import (
	"sync"
)

// Pusher is the registry's view of a live session: enough to identify it,
// check liveness, deliver an event, and evict it when the same user signs in
// again. *Session implements it; tests substitute fakes.
type Pusher interface {
	// UserID returns the stable identity the session was registered under.
	UserID() int64

	// IsOpen reports whether the session still accepts outbound events.
	IsOpen() bool

	// SendEvent serializes and writes one event to the session's transport.
	SendEvent(evt OutboundEvent) error

	// Kick closes the session's transport with a session-replaced close frame.
	Kick(reason string)
}

// Registry maps each user id to at most one live session. A new registration
// for the same user atomically replaces the prior entry; the evicted session
// is returned to the caller, which is responsible for closing it (the registry
// itself never touches a transport).
type Registry struct {
	mu    sync.RWMutex
	conns map[int64]Pusher
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[int64]Pusher),
	}
}

// Register inserts the session under its user id, replacing any existing
// entry. It returns the evicted session, or nil if the slot was empty or
// already held this session.
func (r *Registry) Register(p Pusher) Pusher {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.conns[p.UserID()]
	r.conns[p.UserID()] = p

	if prev == p {
		return nil
	}
	return prev
}

// Unregister removes the entry for the session's user id, but only if it
// still maps to this exact session. A session that was evicted by a newer
// login therefore cannot remove its replacement during its own cleanup.
// Removing an absent entry is a no-op.
func (r *Registry) Unregister(p Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.conns[p.UserID()]; ok && current == p {
		delete(r.conns, p.UserID())
	}
}

// Lookup returns the live session for the given user id, if any.
// The result is a snapshot: a registration or removal racing with the call
// resolves to either the old or the new state, never a partial one.
func (r *Registry) Lookup(userID int64) (Pusher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.conns[userID]
	return p, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}
