package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Setting is a single application setting row
type Setting struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Repository defines app settings data access interface
type Repository interface {
	GetAll(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new settings repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// GetAll returns all settings
func (r *repository) GetAll(ctx context.Context) ([]Setting, error) {
	var settings []Setting
	err := r.db.SelectContext(ctx, &settings, `SELECT key, value, updated_at FROM app_settings ORDER BY key`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settings repository get all: %w", err)
	}
	return settings, nil
}

// Upsert creates or replaces a setting value
func (r *repository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("settings repository upsert: %w", err)
	}
	return nil
}
