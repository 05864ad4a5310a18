package postgres

import (
	"context"
	"fmt"

	"energy-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// defaultJournalLimit caps ListBySession when the caller passes no limit.
const defaultJournalLimit = 50

// JournalRepo implements ports.ActionJournal.
type JournalRepo struct {
	pool Pool
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(pool Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

// Record inserts the entry, or moves an existing entry with the same id to its new phase.
func (r *JournalRepo) Record(ctx context.Context, e *domain.JournalEntry) error {
	query := `INSERT INTO action_journal (id, session_id, action, listing_id, phase, tx_digest, message, error_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET phase = EXCLUDED.phase, tx_digest = EXCLUDED.tx_digest,
			message = EXCLUDED.message, error_code = EXCLUDED.error_code, updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.SessionID, e.Action, e.ListingID, e.Phase,
		e.TxDigest, e.Message, e.ErrorCode, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("record journal entry: %w", err)
	}
	return nil
}

// ListBySession returns the session's entries, newest first.
func (r *JournalRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	query := `SELECT id, session_id, action, listing_id, phase, tx_digest, message, error_code, created_at, updated_at
		FROM action_journal WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e := domain.JournalEntry{}
		err := rows.Scan(
			&e.ID, &e.SessionID, &e.Action, &e.ListingID, &e.Phase,
			&e.TxDigest, &e.Message, &e.ErrorCode, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal rows: %w", err)
	}
	return entries, nil
}
