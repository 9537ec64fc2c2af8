package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nestegg/internal/history/models"
	id "nestegg/pkg/domain"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e *models.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_history (id, user_id, kind, detail, result, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(e.ID), uuid.UUID(e.UserID), string(e.Kind), e.Detail, string(e.Result), e.OccurredAt)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID, limit int) ([]*models.Entry, error) {
	query := `
		SELECT id, user_id, kind, detail, result, occurred_at
		FROM query_history
		WHERE user_id = $1
		ORDER BY occurred_at DESC, id`
	args := []any{uuid.UUID(userID)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Entry, 0)
	for rows.Next() {
		var (
			e              models.Entry
			rawID, rawUser uuid.UUID
			kind, result   string
		)
		if err := rows.Scan(&rawID, &rawUser, &kind, &e.Detail, &result, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.ID = id.HistoryEntryID(rawID)
		e.UserID = id.UserID(rawUser)
		e.Kind = models.Kind(kind)
		e.Result = models.Result(result)
		e.OccurredAt = e.OccurredAt.UTC()
		out = append(out, &e)
	}
	return out, rows.Err()
}
