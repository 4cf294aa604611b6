/*
Package chat contains the real-time direct messaging core.

This file defines the Relay, the persist-then-push step performed for each
valid inbound chat frame.
*/
package chat

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"cyberlink/internal/pkg/logx"
)

// MessageStore is the persistence collaborator consumed by the Relay.
// The returned time is the server-assigned timestamp of the stored message.
type MessageStore interface {
	SaveMessage(ctx context.Context, senderID, receiverID int64, content string) (time.Time, error)
}

// Relay persists each inbound frame and, when the recipient has a live open
// session, pushes the resulting event to it in real time.
type Relay struct {
	store  MessageStore
	conns  *Registry
	logger zerolog.Logger
}

// NewRelay constructs a Relay over the given persistence collaborator and
// session registry.
func NewRelay(store MessageStore, conns *Registry) *Relay {
	return &Relay{
		store:  store,
		conns:  conns,
		logger: logx.Logger().With().Str("component", "Relay").Logger(),
	}
}

// Relay persists the message, then attempts real-time delivery.
//
// Persistence is unconditional and happens before any push: a message that
// fails to persist is never delivered, and the error is returned to the
// calling session (which drops the frame and keeps reading). An absent or
// non-open recipient session skips delivery silently; messages for offline
// recipients are not lost, only their real-time push is. A push failure is
// treated identically to an absent recipient.
func (rl *Relay) Relay(ctx context.Context, senderID int64, frame InboundFrame) error {
	sentAt, err := rl.store.SaveMessage(ctx, senderID, frame.ReceiverID, frame.Content)
	if err != nil {
		return err
	}

	recipient, ok := rl.conns.Lookup(frame.ReceiverID)
	if !ok || !recipient.IsOpen() {
		return nil
	}

	evt := OutboundEvent{
		SenderID:   senderID,
		ReceiverID: frame.ReceiverID,
		Content:    frame.Content,
		Timestamp:  sentAt,
	}

	if err := recipient.SendEvent(evt); err != nil {
		rl.logger.Debug().Err(err).
			Int64("sender_id", senderID).
			Int64("receiver_id", frame.ReceiverID).
			Msg("Real-time push failed, message remains persisted")
	}

	return nil
}
