package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Filter narrows booking queries. Nil fields are not applied.
type Filter struct {
	LocationID        *uuid.UUID
	SalesPersonID     *uuid.UUID
	Status            *Status
	HasCollectionDate bool
}

// Projection carries the fields needed to sort and summarize the full
// filtered set without loading complete rows.
type Projection struct {
	ID                 uuid.UUID      `db:"id"`
	SessionDate        sql.NullString `db:"session_date"`
	SessionTime        sql.NullString `db:"session_time"`
	SpecialRequestDate sql.NullString `db:"special_request_date"`
	SpecialRequestTime sql.NullString `db:"special_request_time"`
	CollectionDate     sql.NullString `db:"collection_date"`
	CollectionTime     sql.NullString `db:"collection_time"`
	Status             Status         `db:"status"`
}

// Repository defines booking data access interface
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Booking, error)
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListProjections returns sort/summary fields for every booking matching
	// the filter, in no particular order.
	ListProjections(ctx context.Context, f Filter) ([]Projection, error)

	// AssignStudioNumber atomically picks and writes the next studio number
	// for the booking at the given location, marking it CONFIRMED.
	AssignStudioNumber(ctx context.Context, bookingID, locationID uuid.UUID) (int, error)

	// UpdateSignature records a new consent signature file path
	UpdateSignature(ctx context.Context, id uuid.UUID, path string) error
}

const bookingColumns = `id, customer_name, phone_number, emergency_phone_number, photoshoot_type,
	session_date, session_time, special_request_date, special_request_time,
	payment_method, status, location_id, sales_person_id, studio_number,
	collection_date, collection_time, signature_path, consent_form_signed,
	notes, studio_notes, cancellation_reason, created_at, updated_at`

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new booking
func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, customer_name, phone_number, emergency_phone_number, photoshoot_type,
			session_date, session_time, special_request_date, special_request_time,
			payment_method, status, location_id, sales_person_id,
			collection_date, collection_time, consent_form_signed,
			notes, studio_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.CustomerName,
		b.PhoneNumber,
		b.EmergencyPhoneNumber,
		b.PhotoshootType,
		b.SessionDate,
		b.SessionTime,
		b.SpecialRequestDate,
		b.SpecialRequestTime,
		b.PaymentMethod,
		b.Status,
		b.LocationID,
		b.SalesPersonID,
		b.CollectionDate,
		b.CollectionTime,
		b.ConsentFormSigned,
		b.Notes,
		b.StudioNotes,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("booking repository create: %w", err)
	}
	return nil
}

// GetByID returns a booking by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("booking repository get by id: %w", err)
	}
	return &b, nil
}

// GetByIDs returns bookings for the given id set, in no particular order
func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ANY($1)`
	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("booking repository get by ids: %w", err)
	}
	return bookings, nil
}

// Update writes all mutable booking fields. Studio number is deliberately not
// part of this statement; it is written only by AssignStudioNumber.
func (r *repository) Update(ctx context.Context, b *Booking) error {
	query := `
		UPDATE bookings
		SET customer_name = $2, phone_number = $3, emergency_phone_number = $4, photoshoot_type = $5,
			session_date = $6, session_time = $7, special_request_date = $8, special_request_time = $9,
			payment_method = $10, status = $11, location_id = $12,
			collection_date = $13, collection_time = $14,
			notes = $15, studio_notes = $16, cancellation_reason = $17, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.CustomerName,
		b.PhoneNumber,
		b.EmergencyPhoneNumber,
		b.PhotoshootType,
		b.SessionDate,
		b.SessionTime,
		b.SpecialRequestDate,
		b.SpecialRequestTime,
		b.PaymentMethod,
		b.Status,
		b.LocationID,
		b.CollectionDate,
		b.CollectionTime,
		b.Notes,
		b.StudioNotes,
		b.CancellationReason,
	)
	if err != nil {
		return fmt.Errorf("booking repository update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Delete removes a booking
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("booking repository delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// UpdateSignature records the consent signature path and marks the form signed
func (r *repository) UpdateSignature(ctx context.Context, id uuid.UUID, path string) error {
	query := `
		UPDATE bookings
		SET signature_path = $2, consent_form_signed = true, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, path)
	if err != nil {
		return fmt.Errorf("booking repository update signature: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ListProjections returns sort/summary fields for the full filtered set
func (r *repository) ListProjections(ctx context.Context, f Filter) ([]Projection, error) {
	query := `SELECT id, session_date, session_time, special_request_date, special_request_time,
		collection_date, collection_time, status FROM bookings`

	where, args := buildFilter(f)
	if where != "" {
		query += " WHERE " + where
	}

	var rows []Projection
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("booking repository list projections: %w", err)
	}
	return rows, nil
}

func buildFilter(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.LocationID != nil {
		args = append(args, *f.LocationID)
		conds = append(conds, "location_id = $"+strconv.Itoa(len(args)))
	}
	if f.SalesPersonID != nil {
		args = append(args, *f.SalesPersonID)
		conds = append(conds, "sales_person_id = $"+strconv.Itoa(len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if f.HasCollectionDate {
		conds = append(conds, "collection_date IS NOT NULL AND collection_time IS NOT NULL")
	}

	return strings.Join(conds, " AND "), args
}

// AssignStudioNumber picks the first-fit studio number for the location and
// writes it together with the CONFIRMED status. Existing allocations for the
// location are locked for the duration of the transaction, and the partial
// unique index on (location_id, studio_number) backs the remaining race
// window: a conflicting concurrent commit surfaces as SQLSTATE 23505, after
// which a single retry falls back to max+1.
func (r *repository) AssignStudioNumber(ctx context.Context, bookingID, locationID uuid.UUID) (int, error) {
	number, err := r.assignOnce(ctx, bookingID, locationID, nextStudioNumber)
	if err == nil {
		return number, nil
	}
	if !errors.Is(err, ErrStudioNumberConflict) {
		return 0, err
	}

	// Retry exactly once with max+1
	return r.assignOnce(ctx, bookingID, locationID, fallbackStudioNumber)
}

func (r *repository) assignOnce(ctx context.Context, bookingID, locationID uuid.UUID, pick func([]int) int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var allocated []int
	err = tx.SelectContext(ctx, &allocated, `
		SELECT studio_number
		FROM bookings
		WHERE location_id = $1 AND studio_number IS NOT NULL
		ORDER BY studio_number
		FOR UPDATE
	`, locationID)
	if err != nil {
		return 0, fmt.Errorf("booking repository lock allocations: %w", err)
	}

	number := pick(allocated)

	result, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET studio_number = $2, status = $3, updated_at = now()
		WHERE id = $1 AND studio_number IS NULL
	`, bookingID, number, StatusConfirmed)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrStudioNumberConflict
		}
		return 0, fmt.Errorf("booking repository assign studio number: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrAlreadyAllocated
	}

	if err := tx.Commit(); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrStudioNumberConflict
		}
		return 0, err
	}
	return number, nil
}
