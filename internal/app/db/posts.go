package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// feedSelect is the shared projection for feed-style post queries: the post,
// its author's username, and the viewer's like/bookmark state plus counts.
const feedSelect = `
	SELECT p.id, p.content, p.image, u.username,
	       EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1) AS is_liked,
	       EXISTS (SELECT 1 FROM bookmarks b WHERE b.post_id = p.id AND b.user_id = $1) AS is_bookmarked,
	       (SELECT count(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	       (SELECT count(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

// CreatePost inserts a post and returns the stored row.
func (s *Store) CreatePost(ctx context.Context, userID int64, content, imageKey string) (*Post, error) {
	post := &Post{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, content, image)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, content, image, created_at
	`, userID, content, imageKey).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.Image,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostByID fetches a single post row.
func (s *Store) GetPostByID(ctx context.Context, postID int64) (*Post, error) {
	post := &Post{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, content, image, created_at FROM posts WHERE id = $1
	`, postID).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.Image,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return post, nil
}

// ListFeed returns every post, newest first, decorated for the viewing user.
func (s *Store) ListFeed(ctx context.Context, viewerID int64) ([]FeedPost, error) {
	rows, err := s.pool.Query(ctx, feedSelect+`ORDER BY p.id DESC`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFeedPosts(rows)
}

// GetFeedPost returns one post decorated for the viewing user.
func (s *Store) GetFeedPost(ctx context.Context, viewerID, postID int64) (*FeedPost, error) {
	var p FeedPost
	err := s.pool.QueryRow(ctx, feedSelect+`WHERE p.id = $2`, viewerID, postID).Scan(
		&p.ID, &p.Content, &p.Image, &p.Username,
		&p.IsLiked, &p.IsBookmarked, &p.LikeCount, &p.CommentCount,
	)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

// ListBookmarkedPosts returns the viewer's bookmarked posts, decorated like the feed.
func (s *Store) ListBookmarkedPosts(ctx context.Context, viewerID int64) ([]FeedPost, error) {
	rows, err := s.pool.Query(ctx, feedSelect+`
		JOIN bookmarks bm ON bm.post_id = p.id AND bm.user_id = $1
		ORDER BY bm.id DESC`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFeedPosts(rows)
}

// ListPostsByUser returns the compact posts shown on a profile, newest first.
func (s *Store) ListPostsByUser(ctx context.Context, userID int64) ([]PostSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, content, image FROM posts WHERE user_id = $1 ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []PostSummary{}
	for rows.Next() {
		var p PostSummary
		if err := rows.Scan(&p.ID, &p.Content, &p.Image); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UpdatePostContent replaces a post's caption.
func (s *Store) UpdatePostContent(ctx context.Context, postID int64, content string) error {
	_, err := s.pool.Exec(ctx, `UPDATE posts SET content = $2 WHERE id = $1`, postID, content)
	return err
}

// DeletePost removes a post; comments, likes, and bookmarks cascade.
func (s *Store) DeletePost(ctx context.Context, postID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	return err
}

// HasLike reports whether the user already liked the post.
func (s *Store) HasLike(ctx context.Context, postID, userID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`, postID, userID)
}

// AddLike records a like.
func (s *Store) AddLike(ctx context.Context, postID, userID int64) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	return err
}

// RemoveLike deletes a like; removing a like that does not exist is a no-op.
func (s *Store) RemoveLike(ctx context.Context, postID, userID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

// HasBookmark reports whether the user already bookmarked the post.
func (s *Store) HasBookmark(ctx context.Context, postID, userID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE post_id = $1 AND user_id = $2)`, postID, userID)
}

// AddBookmark records a bookmark.
func (s *Store) AddBookmark(ctx context.Context, postID, userID int64) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO bookmarks (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	return err
}

// RemoveBookmark deletes a bookmark; removing a missing bookmark is a no-op.
func (s *Store) RemoveBookmark(ctx context.Context, postID, userID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM bookmarks WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func collectFeedPosts(rows pgx.Rows) ([]FeedPost, error) {
	posts := []FeedPost{}
	for rows.Next() {
		var p FeedPost
		if err := rows.Scan(
			&p.ID, &p.Content, &p.Image, &p.Username,
			&p.IsLiked, &p.IsBookmarked, &p.LikeCount, &p.CommentCount,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
