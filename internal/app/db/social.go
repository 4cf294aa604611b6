package db

import (
	"context"
)

// IsFollowing reports whether followerID follows userID.
func (s *Store) IsFollowing(ctx context.Context, userID, followerID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM followers WHERE user_id = $1 AND follower_id = $2)`, userID, followerID)
}

// AddFollower records that followerID follows userID.
func (s *Store) AddFollower(ctx context.Context, userID, followerID int64) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO followers (user_id, follower_id) VALUES ($1, $2)`, userID, followerID)
	return err
}

// RemoveFollower deletes the follow edge; removing a missing edge is a no-op.
func (s *Store) RemoveFollower(ctx context.Context, userID, followerID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM followers WHERE user_id = $1 AND follower_id = $2`, userID, followerID)
	return err
}

// CountFollowers returns the number of accounts following userID.
func (s *Store) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	return s.count(ctx, `SELECT count(*) FROM followers WHERE user_id = $1`, userID)
}

// CountFollowing returns the number of accounts userID follows.
func (s *Store) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	return s.count(ctx, `SELECT count(*) FROM followers WHERE follower_id = $1`, userID)
}

// CountPostsByUser returns the number of posts authored by userID.
func (s *Store) CountPostsByUser(ctx context.Context, userID int64) (int64, error) {
	return s.count(ctx, `SELECT count(*) FROM posts WHERE user_id = $1`, userID)
}

// ListFollowers returns the accounts following userID.
func (s *Store) ListFollowers(ctx context.Context, userID int64) ([]FollowEntry, error) {
	return s.listFollowEntries(ctx, `
		SELECT f.follower_id, u.username
		FROM followers f
		JOIN users u ON u.id = f.follower_id
		WHERE f.user_id = $1
		ORDER BY u.username
	`, userID)
}

// ListFollowing returns the accounts userID follows.
func (s *Store) ListFollowing(ctx context.Context, userID int64) ([]FollowEntry, error) {
	return s.listFollowEntries(ctx, `
		SELECT f.user_id, u.username
		FROM followers f
		JOIN users u ON u.id = f.user_id
		WHERE f.follower_id = $1
		ORDER BY u.username
	`, userID)
}

// ListFollowerIDs returns the ids of every account following userID,
// used for notification fan-out on new posts and stories.
func (s *Store) ListFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := s.pool.Query(ctx, `SELECT follower_id FROM followers WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsBlocked reports whether userID has blocked blockedID.
func (s *Store) IsBlocked(ctx context.Context, userID, blockedID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM blocked WHERE user_id = $1 AND blocked_id = $2)`, userID, blockedID)
}

// AddBlock records that userID blocked blockedID.
func (s *Store) AddBlock(ctx context.Context, userID, blockedID int64) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO blocked (user_id, blocked_id) VALUES ($1, $2)`, userID, blockedID)
	return err
}

// RemoveBlock deletes the block edge; removing a missing edge is a no-op.
func (s *Store) RemoveBlock(ctx context.Context, userID, blockedID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM blocked WHERE user_id = $1 AND blocked_id = $2`, userID, blockedID)
	return err
}

// ListBlockedUsers returns the accounts userID has blocked.
func (s *Store) ListBlockedUsers(ctx context.Context, userID int64) ([]BlockedUser, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.username, u.profile_picture
		FROM blocked b
		JOIN users u ON u.id = b.blocked_id
		WHERE b.user_id = $1
		ORDER BY u.username
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []BlockedUser{}
	for rows.Next() {
		var u BlockedUser
		if err := rows.Scan(&u.ID, &u.Username, &u.ProfilePicture); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) listFollowEntries(ctx context.Context, query string, userID int64) ([]FollowEntry, error) {
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []FollowEntry{}
	for rows.Next() {
		var e FollowEntry
		if err := rows.Scan(&e.UserID, &e.Username); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
