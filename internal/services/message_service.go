package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/chat-relay-be/internal/models"
)

// Pagination defaults applied when the caller passes values below the minimum.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// MessageServiceProvider defines the interface for the message log.
type MessageServiceProvider interface {
	Append(msg models.Message) (models.Message, error)
	GetPage(page, limit int) ([]models.Message, error)
	Search(query string) ([]models.Message, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// MessageService provides the append-only chat log.
type MessageService struct {
	db *sql.DB
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *sql.DB) *MessageService {
	return &MessageService{db: db}
}

// Append persists one message. The ID is always store-assigned, in append
// order; the timestamp is server-assigned unless the caller set one.
func (s *MessageService) Append(msg models.Message) (models.Message, error) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	res, err := s.db.Exec("INSERT INTO messages (author, body, timestamp) VALUES (?, ?, ?)",
		msg.Author, msg.Body, msg.Timestamp)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	msg.ID = id
	return msg, nil
}

// GetPage returns up to limit messages, most recent first, skipping
// (page-1)*limit entries. Values below the minimum fall back to the defaults;
// a page past the end of the log is an empty result, not an error.
func (s *MessageService) GetPage(page, limit int) ([]models.Message, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	offset := (page - 1) * limit

	rows, err := s.db.Query(
		"SELECT id, author, body, timestamp FROM messages ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// Search returns every message whose body contains the query,
// case-insensitively, most recent first. The result is unbounded.
func (s *MessageService) Search(query string) ([]models.Message, error) {
	rows, err := s.db.Query(
		"SELECT id, author, body, timestamp FROM messages WHERE instr(lower(body), ?) > 0 ORDER BY timestamp DESC, id DESC",
		strings.ToLower(query))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// DeleteOlderThan removes messages with a timestamp before the cutoff and
// reports how many were deleted. Used by the retention pruner.
func (s *MessageService) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM messages WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return res.RowsAffected()
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Author, &msg.Body, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}
	return messages, nil
}
