package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evoapps/evodo/internal/model"
)

// AppendChatMessage stores one chat transcript entry for a user.
func (s *SQLiteStore) AppendChatMessage(ctx context.Context, msg model.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, user_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.UserID, msg.Role, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("appending chat message: %w", err)
	}
	return nil
}

// GetChatHistory returns the last limit messages for a user, oldest first.
// A non-positive limit returns the full transcript.
func (s *SQLiteStore) GetChatHistory(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages WHERE user_id = ? ORDER BY seq DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var messages []model.ChatMessage
	if err := s.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("querying chat history: %w", err)
	}

	// Newest-first from the query; reverse to transcript order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ClearChatHistory deletes a user's entire chat transcript.
func (s *SQLiteStore) ClearChatHistory(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM chat_messages WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clearing chat history: %w", err)
	}
	return nil
}
