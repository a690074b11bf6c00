package conversation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TranscriptStore mirrors conversations and messages into PostgreSQL so the
// portal can show long-term history. Writes are best effort; a nil store or a
// nil db disables persistence entirely.
type TranscriptStore struct {
	db             *sql.DB
	excludedPhones map[string]struct{}
}

// NewTranscriptStore creates a transcript store. Conversations whose lead
// phone matches an entry in excludePhones (test numbers, internal lines) are
// skipped.
func NewTranscriptStore(db *sql.DB, excludePhones []string) *TranscriptStore {
	if db == nil {
		return nil
	}
	excluded := make(map[string]struct{})
	for _, phone := range excludePhones {
		digits := normalizePhoneDigits(phone)
		if digits != "" {
			excluded[digits] = struct{}{}
		}
	}
	return &TranscriptStore{db: db, excludedPhones: excluded}
}

// normalizePhoneDigits strips non-digits and normalizes 10-digit US numbers
// to 11-digit format.
func normalizePhoneDigits(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 10 {
		return "1" + d
	}
	return d
}

func (s *TranscriptStore) isPhoneExcluded(phone string) bool {
	if s == nil || len(s.excludedPhones) == 0 || phone == "" {
		return false
	}
	_, excluded := s.excludedPhones[normalizePhoneDigits(phone)]
	return excluded
}

// EnsureConversation creates the conversation row if it does not exist yet and
// bumps its activity timestamp when it does. Returns the row UUID.
func (s *TranscriptStore) EnsureConversation(ctx context.Context, conversationID, leadPhone, locale string) (uuid.UUID, error) {
	if s == nil || s.db == nil {
		return uuid.Nil, nil
	}
	if conversationID == "" {
		return uuid.Nil, fmt.Errorf("conversation: transcript conversationID required")
	}
	if s.isPhoneExcluded(leadPhone) {
		return uuid.Nil, nil
	}

	var existingID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM conversations WHERE conversation_id = $1`,
		conversationID,
	).Scan(&existingID)
	if err == nil {
		s.db.ExecContext(ctx,
			`UPDATE conversations SET updated_at = $1 WHERE id = $2`,
			time.Now().UTC(), existingID,
		)
		return existingID, nil
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, fmt.Errorf("conversation: failed to check existing transcript: %w", err)
	}

	newID := uuid.New()
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (
			id, conversation_id, lead_phone, locale, status,
			message_count, started_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, newID, conversationID, leadPhone, locale, "active", 0, now, now, now)
	if err != nil {
		// Another request may have created the row concurrently.
		if strings.Contains(err.Error(), "duplicate key") {
			return s.EnsureConversation(ctx, conversationID, leadPhone, locale)
		}
		return uuid.Nil, fmt.Errorf("conversation: failed to create transcript: %w", err)
	}
	return newID, nil
}

// AppendMessage persists one message and updates the conversation counter.
func (s *TranscriptStore) AppendMessage(ctx context.Context, conversationID, leadPhone, locale, role, content string) error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.isPhoneExcluded(leadPhone) {
		return nil
	}

	if _, err := s.EnsureConversation(ctx, conversationID, leadPhone, locale); err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO conversation_messages (
			id, conversation_id, role, content, created_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, uuid.New(), conversationID, role, content, now)
	if err != nil {
		return fmt.Errorf("conversation: failed to insert message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("conversation: failed to read insert result: %w", err)
	}
	if rowsAffected == 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations SET
			message_count = message_count + 1,
			last_message_at = $1,
			updated_at = $1
		WHERE conversation_id = $2
	`, now, conversationID)
	if err != nil {
		return fmt.Errorf("conversation: failed to update counters: %w", err)
	}
	return nil
}
