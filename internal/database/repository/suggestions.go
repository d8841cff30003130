package repository

import (
	"context"
	"database/sql"
	"time"
)

// Suggestion statuses.
const (
	SuggestionPending  = "pending"
	SuggestionApproved = "approved"
	SuggestionRejected = "rejected"
)

// Suggestion is a visitor-proposed new deal or edit awaiting moderation.
// Payload holds the proposed deal fields as JSON; DealID is nil for a
// proposed new entry.
type Suggestion struct {
	ID        string
	DealID    *int64
	Payload   string
	Status    string
	CreatedAt time.Time
	DecidedAt *time.Time
}

// SuggestionRepo handles the moderation queue.
type SuggestionRepo struct {
	q dbtx
}

func NewSuggestionRepo(db *sql.DB) *SuggestionRepo { return &SuggestionRepo{q: db} }

// WithTx returns a copy whose statements join the given transaction.
func (r *SuggestionRepo) WithTx(tx *sql.Tx) *SuggestionRepo { return &SuggestionRepo{q: tx} }

func (r *SuggestionRepo) Add(ctx context.Context, s Suggestion) error {
	_, err := r.q.ExecContext(ctx, `
	INSERT INTO suggestions(id, deal_id, payload, status, created_at)
	VALUES(?, ?, ?, ?, ?)`,
		s.ID, s.DealID, s.Payload, s.Status, s.CreatedAt)
	return err
}

func (r *SuggestionRepo) Get(ctx context.Context, id string) (*Suggestion, error) {
	row := r.q.QueryRowContext(ctx, `
	SELECT id, deal_id, payload, status, created_at, decided_at
	FROM suggestions WHERE id = ?`, id)
	s, err := scanSuggestion(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListPending returns the moderation queue, oldest first.
func (r *SuggestionRepo) ListPending(ctx context.Context) ([]Suggestion, error) {
	rows, err := r.q.QueryContext(ctx, `
	SELECT id, deal_id, payload, status, created_at, decided_at
	FROM suggestions WHERE status = ? ORDER BY created_at, id`, SuggestionPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Suggestion
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Decide stamps a pending suggestion with its final status.
func (r *SuggestionRepo) Decide(ctx context.Context, id, status string, decidedAt time.Time) error {
	_, err := r.q.ExecContext(ctx, `
	UPDATE suggestions SET status = ?, decided_at = ? WHERE id = ? AND status = ?`,
		status, decidedAt, id, SuggestionPending)
	return err
}

func scanSuggestion(row scanner) (Suggestion, error) {
	var s Suggestion
	var dealID sql.NullInt64
	var decided sql.NullTime
	if err := row.Scan(&s.ID, &dealID, &s.Payload, &s.Status, &s.CreatedAt, &decided); err != nil {
		return Suggestion{}, err
	}
	if dealID.Valid {
		s.DealID = &dealID.Int64
	}
	if decided.Valid {
		s.DecidedAt = &decided.Time
	}
	return s, nil
}
