package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guptabinit/listform/internal/database"
	"github.com/guptabinit/listform/internal/payload"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository persists encoded submissions.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository.
// Returns error if pool is nil.
func NewSubmissionRepository(pool *pgxpool.Pool) (*SubmissionRepository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &SubmissionRepository{pool: pool}, nil
}

// Insert stores a submission and its flattened parts in one transaction,
// preserving part order. File parts store the descriptor name.
func (r *SubmissionRepository) Insert(ctx context.Context, formID int64, clientIP string, parts []payload.Pair) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	query, args, err := database.QB.
		Insert("submissions").
		Columns("form_id", "client_ip").
		Values(formID, clientIP).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build submission insert: %w", err)
	}

	var submissionID int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&submissionID); err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}

	if len(parts) > 0 {
		builder := database.QB.
			Insert("submission_parts").
			Columns("submission_id", "key", "value", "is_file", "position")
		for i, p := range parts {
			value := p.Value
			isFile := p.File != nil
			if isFile {
				value = p.File.Name
			}
			builder = builder.Values(submissionID, p.Key, value, isFile, i)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build parts insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert submission parts: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit submission: %w", err)
	}
	return submissionID, nil
}
