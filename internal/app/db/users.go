package db

import (
	"context"
)

// CreateUser inserts a new account and returns the stored row.
// A unique violation on username or email surfaces through IsUniqueViolation.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, firstName, lastName string) (*User, error) {
	user := &User{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, password_hash, first_name, last_name, biography, profile_picture, otp, created_at
	`, username, email, passwordHash, firstName, lastName).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Biography,
		&user.ProfilePicture,
		&user.OTP,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail fetches the account registered under the given email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getUser(ctx, `WHERE email = $1`, email)
}

// GetUserByUsername fetches the account with the given username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.getUser(ctx, `WHERE username = $1`, username)
}

// GetUserByID fetches the account with the given id.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*User, error) {
	user := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, first_name, last_name, biography, profile_picture, otp, created_at
		FROM users `+where,
		arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Biography,
		&user.ProfilePicture,
		&user.OTP,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return user, nil
}

// UpdateBiography replaces the user's biography text.
func (s *Store) UpdateBiography(ctx context.Context, userID int64, biography string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET biography = $2 WHERE id = $1`, userID, biography)
	return err
}

// UpdateProfilePicture replaces the user's profile picture object key.
func (s *Store) UpdateProfilePicture(ctx context.Context, userID int64, imageKey string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET profile_picture = $2 WHERE id = $1`, userID, imageKey)
	return err
}

// SetOTP stores a pending one-time password code on the account.
func (s *Store) SetOTP(ctx context.Context, userID int64, code string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET otp = $2 WHERE id = $1`, userID, code)
	return err
}

// UpdatePassword replaces the password hash and consumes any pending one-time password.
func (s *Store) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2, otp = NULL WHERE id = $1`, userID, passwordHash)
	return err
}

// DeleteUser removes the account; dependent rows cascade in the schema.
func (s *Store) DeleteUser(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	return err
}

// SearchUsers returns accounts whose username contains the search term.
func (s *Store) SearchUsers(ctx context.Context, term string) ([]UserSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, username, profile_picture
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username
		LIMIT 50
	`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []UserSummary{}
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.ProfilePicture); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
