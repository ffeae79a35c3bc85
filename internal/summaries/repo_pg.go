package summaries

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements SummariesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new summary.
func (r *PGRepo) Create(ctx context.Context, s Summary) error {
	const query = `
INSERT INTO summaries (
    id,
    user_id,
    file_name,
    storage_key,
    summary,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6)`

	var storageKey sql.NullString
	if s.StorageKey != "" {
		storageKey = sql.NullString{String: s.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		s.ID,
		s.UserID,
		s.FileName,
		storageKey,
		s.Summary,
		s.CreatedAt,
	)
	return err
}

// ListByUser lists summaries for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_name, storage_key, summary, created_at
FROM summaries
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var storageKey sql.NullString
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.FileName,
			&storageKey,
			&s.Summary,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if storageKey.Valid {
			s.StorageKey = storageKey.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches a summary by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, summaryID string) (Summary, error) {
	const query = `
SELECT id, user_id, file_name, storage_key, summary, created_at
FROM summaries
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var s Summary
	var storageKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userId, summaryID).Scan(
		&s.ID,
		&s.UserID,
		&s.FileName,
		&storageKey,
		&s.Summary,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	if storageKey.Valid {
		s.StorageKey = storageKey.String
	}
	return s, nil
}

var _ SummariesRepo = (*PGRepo)(nil)
