/*
Package chat contains the real-time direct messaging core: the registry of live
socket sessions keyed by user id, the per-connection receive loop, and the
persist-then-push relay for inbound chat frames.

This file defines the wire shapes exchanged over the messaging socket.
*/
package chat

import "time"

// MaxContentBytes is the maximum allowed size (in bytes) for message content.
const MaxContentBytes = 5000

// InboundFrame is the decoded body of one data frame received from a client.
// Frames that fail to decode, or decode with an empty content or a
// non-positive receiver id, are dropped without side effects.
type InboundFrame struct {
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
}

// Valid reports whether the frame names a plausible receiver and carries
// non-empty content within the size limit.
func (f InboundFrame) Valid() bool {
	return f.ReceiverID > 0 && f.Content != "" && len(f.Content) <= MaxContentBytes
}

// OutboundEvent is the JSON body pushed to a recipient's live session after
// the message has been persisted. Timestamp is the persistence time.
type OutboundEvent struct {
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}
