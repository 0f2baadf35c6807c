package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evoapps/evodo/internal/model"
)

// CreateUser inserts a new user record. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) error {
	if strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("user email must not be empty")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, created_at)
		VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.DisplayName, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating user %s: %w", user.Email, err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
// such user exists.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", email, err)
	}
	return &user, nil
}
