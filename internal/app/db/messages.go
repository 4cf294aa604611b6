package db

import (
	"context"
	"time"
)

// SaveMessage durably records a chat message with read = false and a
// server-assigned timestamp, and returns that timestamp. The stored row
// outlives any socket session on either side of the conversation.
func (s *Store) SaveMessage(ctx context.Context, senderID, receiverID int64, content string) (time.Time, error) {
	var sentAt time.Time
	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content)
		VALUES ($1, $2, $3)
		RETURNING sent_at
	`, senderID, receiverID, content).Scan(&sentAt)
	if err != nil {
		return time.Time{}, err
	}
	return sentAt, nil
}
