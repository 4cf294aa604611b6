package db

import (
	"context"
)

// ListComments returns a post's comments with each author's username and avatar.
func (s *Store) ListComments(ctx context.Context, postID int64) ([]CommentView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.content, u.username, u.profile_picture
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.id
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []CommentView{}
	for rows.Next() {
		var c CommentView
		if err := rows.Scan(&c.ID, &c.Content, &c.Username, &c.Image); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateComment inserts a comment and returns its id.
func (s *Store) CreateComment(ctx context.Context, postID, userID int64, content string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, content) VALUES ($1, $2, $3) RETURNING id
	`, postID, userID, content).Scan(&id)
	return id, err
}

// GetCommentByID fetches a single comment row.
func (s *Store) GetCommentByID(ctx context.Context, commentID int64) (*Comment, error) {
	comment := &Comment{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, post_id, user_id, content FROM comments WHERE id = $1
	`, commentID).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.Content,
	)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return comment, nil
}

// UpdateComment replaces a comment's content.
func (s *Store) UpdateComment(ctx context.Context, commentID int64, content string) error {
	_, err := s.pool.Exec(ctx, `UPDATE comments SET content = $2 WHERE id = $1`, commentID, content)
	return err
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	return err
}
