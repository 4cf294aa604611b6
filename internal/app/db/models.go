/*
Package db provides PostgreSQL persistence for the CyberLink backend.

The Store type wraps a pgx connection pool with hand-written query methods,
grouped by table in the neighboring files. Row types in this file mirror the
relational schema under migrations/.
*/
package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store executes all database operations through a shared pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an initialized connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// User is an account row.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Biography      string
	ProfilePicture string
	OTP            *string
	CreatedAt      time.Time
}

// Post is a post row.
type Post struct {
	ID        int64
	UserID    int64
	Content   string
	Image     string
	CreatedAt time.Time
}

// FeedPost is a post decorated with author and viewer-specific engagement state,
// as served on the home feed and bookmark screens.
type FeedPost struct {
	ID           int64  `json:"id"`
	Content      string `json:"content"`
	Image        string `json:"image"`
	Username     string `json:"username"`
	IsLiked      bool   `json:"isLiked"`
	IsBookmarked bool   `json:"isBookmarked"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
}

// PostSummary is the compact post shape embedded in profile responses.
type PostSummary struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// Comment is a comment row.
type Comment struct {
	ID      int64
	PostID  int64
	UserID  int64
	Content string
}

// CommentView is a comment joined with its author's display fields.
type CommentView struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// FollowEntry names one edge of the social graph for list responses.
type FollowEntry struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// BlockedUser is a blocked account's display summary.
type BlockedUser struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// UserSummary is the compact account shape returned by user search.
type UserSummary struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// Notification is a notification row.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ActorID   int64     `json:"actorId"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoryView is a story joined with its author's username.
type StoryView struct {
	Username string `json:"username"`
	Image    string `json:"image"`
}
