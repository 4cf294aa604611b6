package db

import (
	"context"
)

// CreateNotification records an event for userID triggered by actorID.
// The type string is the human-readable notification text shown in the client.
func (s *Store) CreateNotification(ctx context.Context, userID, actorID int64, notifType string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (user_id, actor_id, type) VALUES ($1, $2, $3)
	`, userID, actorID, notifType)
	return err
}

// MarkNotificationsRead flags every unread notification for the user as seen.
func (s *Store) MarkNotificationsRead(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read
	`, userID)
	return err
}

// ListUnreadNotifications returns the user's unread notifications, newest first.
func (s *Store) ListUnreadNotifications(ctx context.Context, userID int64) ([]Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, actor_id, type, read, created_at
		FROM notifications
		WHERE user_id = $1 AND NOT read
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.ActorID, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
