package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines location data access interface
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Location, error)
	List(ctx context.Context) ([]Location, error)
	Update(ctx context.Context, loc *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new location repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new location
func (r *repository) Create(ctx context.Context, loc *Location) error {
	query := `
		INSERT INTO locations (id, name, code, sales_person_ids, dates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		loc.ID,
		loc.Name,
		loc.Code,
		loc.SalesPersonIDs,
		loc.Dates,
		loc.CreatedAt,
		loc.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNameAlreadyTaken
		}
		return fmt.Errorf("location repository create: %w", err)
	}
	return nil
}

// GetByID returns a location by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	query := `SELECT id, name, code, sales_person_ids, dates, created_at, updated_at FROM locations WHERE id = $1`
	var loc Location
	err := r.db.GetContext(ctx, &loc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("location repository get by id: %w", err)
	}
	return &loc, nil
}

// GetByIDs returns locations for the given id set, in no particular order
func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, code, sales_person_ids, dates, created_at, updated_at FROM locations WHERE id = ANY($1)`
	var locs []Location
	err := r.db.SelectContext(ctx, &locs, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("location repository get by ids: %w", err)
	}
	return locs, nil
}

// List returns all locations ordered by name
func (r *repository) List(ctx context.Context) ([]Location, error) {
	query := `SELECT id, name, code, sales_person_ids, dates, created_at, updated_at FROM locations ORDER BY name`
	var locs []Location
	err := r.db.SelectContext(ctx, &locs, query)
	if err != nil {
		return nil, fmt.Errorf("location repository list: %w", err)
	}
	return locs, nil
}

// Update updates name, code, sales persons and dates
func (r *repository) Update(ctx context.Context, loc *Location) error {
	query := `
		UPDATE locations
		SET name = $2, code = $3, sales_person_ids = $4, dates = $5, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		loc.ID,
		loc.Name,
		loc.Code,
		loc.SalesPersonIDs,
		loc.Dates,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNameAlreadyTaken
		}
		return fmt.Errorf("location repository update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// Delete removes a location
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("location repository delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLocationNotFound
	}
	return nil
}
