package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrEntryNotFound  = errors.New("catalog entry not found")
	ErrDuplicateEntry = errors.New("catalog entry already exists")
)

// Repository defines slot catalog data access interface
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByKind(ctx context.Context, kind Kind) ([]Entry, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new schedule repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a catalog entry
func (r *repository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO slot_catalog (id, kind, value, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.Kind, entry.Value, entry.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("schedule repository create: %w", err)
	}
	return nil
}

// ListByKind returns a catalog ordered by value
func (r *repository) ListByKind(ctx context.Context, kind Kind) ([]Entry, error) {
	query := `SELECT id, kind, value, created_at FROM slot_catalog WHERE kind = $1 ORDER BY value`
	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, query, kind)
	if err != nil {
		return nil, fmt.Errorf("schedule repository list: %w", err)
	}
	return entries, nil
}

// Delete removes a catalog entry
func (r *repository) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM slot_catalog WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("schedule repository delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEntryNotFound
	}
	return nil
}
