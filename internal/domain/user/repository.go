package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	List(ctx context.Context, role *Role) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create creates a new user
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "users_email_key" {
				return ErrEmailAlreadyTaken
			}
			return ErrNameAlreadyTaken
		}
		return fmt.Errorf("user repository create: %w", err)
	}
	return nil
}

// GetByID returns user by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user repository get by id: %w", err)
	}
	return &u, nil
}

// GetByName returns user by unique name
func (r *repository) GetByName(ctx context.Context, name string) (*User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE name = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user repository get by name: %w", err)
	}
	return &u, nil
}

// GetByIDs returns users for the given id set, in no particular order
func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = ANY($1)`
	var users []User
	err := r.db.SelectContext(ctx, &users, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("user repository get by ids: %w", err)
	}
	return users, nil
}

// List returns users, optionally filtered by role
func (r *repository) List(ctx context.Context, role *Role) ([]User, error) {
	var users []User
	var err error
	if role != nil {
		query := `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE role = $1 ORDER BY name`
		err = r.db.SelectContext(ctx, &users, query, *role)
	} else {
		query := `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users ORDER BY name`
		err = r.db.SelectContext(ctx, &users, query)
	}
	if err != nil {
		return nil, fmt.Errorf("user repository list: %w", err)
	}
	return users, nil
}

// Update updates name, email, role and password hash
func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "users_email_key" {
				return ErrEmailAlreadyTaken
			}
			return ErrNameAlreadyTaken
		}
		return fmt.Errorf("user repository update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("user repository delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
