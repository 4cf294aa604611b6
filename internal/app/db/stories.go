package db

import (
	"context"
)

// CreateStory inserts a story image and returns its id.
func (s *Store) CreateStory(ctx context.Context, userID int64, imageKey string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO stories (user_id, image) VALUES ($1, $2) RETURNING id
	`, userID, imageKey).Scan(&id)
	return id, err
}

// GetStory fetches a story with its author's username.
func (s *Store) GetStory(ctx context.Context, storyID int64) (*StoryView, error) {
	story := &StoryView{}
	err := s.pool.QueryRow(ctx, `
		SELECT u.username, s.image
		FROM stories s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`, storyID).Scan(&story.Username, &story.Image)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return story, nil
}
