package booking

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/location"
	"github.com/studioline/studioline-api/internal/domain/user"
)

// Status represents booking status (matches booking_status enum)
type Status string

const (
	StatusBooked    Status = "BOOKED"
	StatusConfirmed Status = "CONFIRMED"
	StatusTBC       Status = "TBC"
	StatusCancelled Status = "CANCELLED"
	StatusNoAnswer  Status = "NO_ANSWER"
	StatusWLMK      Status = "WLMK"
	StatusVideoCall Status = "VIDEO_CALL"
)

// SummaryStatuses lists the statuses counted in list summaries
func SummaryStatuses() []Status {
	return []Status{StatusConfirmed, StatusBooked, StatusTBC, StatusCancelled, StatusNoAnswer, StatusWLMK, StatusVideoCall}
}

// PhotoshootType represents the kind of portrait session
type PhotoshootType string

const (
	ShootChildren  PhotoshootType = "children"
	ShootFamily    PhotoshootType = "family"
	ShootCouple    PhotoshootType = "couple"
	ShootMaternity PhotoshootType = "maternity"
)

// PaymentMethod represents how the customer paid
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "CASH"
	PaymentCard    PaymentMethod = "CARD"
	PaymentNotPaid PaymentMethod = "NOT_PAID"
)

// Booking represents a customer photoshoot booking (matches bookings table).
// Date fields hold zero-padded ISO dates (YYYY-MM-DD) and time fields hold
// zero-padded HH:MM, so string comparison orders them correctly.
type Booking struct {
	ID                   uuid.UUID      `db:"id"`
	CustomerName         string         `db:"customer_name"`
	PhoneNumber          string         `db:"phone_number"`
	EmergencyPhoneNumber sql.NullString `db:"emergency_phone_number"`
	PhotoshootType       PhotoshootType `db:"photoshoot_type"`

	SessionDate        sql.NullString `db:"session_date"`
	SessionTime        sql.NullString `db:"session_time"`
	SpecialRequestDate sql.NullString `db:"special_request_date"`
	SpecialRequestTime sql.NullString `db:"special_request_time"`

	PaymentMethod PaymentMethod `db:"payment_method"`
	Status        Status        `db:"status"`

	LocationID    uuid.NullUUID `db:"location_id"`
	SalesPersonID uuid.UUID     `db:"sales_person_id"`
	StudioNumber  sql.NullInt64 `db:"studio_number"`

	CollectionDate sql.NullString `db:"collection_date"`
	CollectionTime sql.NullString `db:"collection_time"`

	SignaturePath     sql.NullString `db:"signature_path"`
	ConsentFormSigned bool           `db:"consent_form_signed"`

	Notes              sql.NullString `db:"notes"`
	StudioNotes        sql.NullString `db:"studio_notes"`
	CancellationReason sql.NullString `db:"cancellation_reason"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasSessionSlot reports whether the regular session slot is fully set
func (b *Booking) HasSessionSlot() bool {
	return b.SessionDate.Valid && b.SessionDate.String != "" &&
		b.SessionTime.Valid && b.SessionTime.String != ""
}

// HasSpecialRequestSlot reports whether the special-request slot is fully set
func (b *Booking) HasSpecialRequestSlot() bool {
	return b.SpecialRequestDate.Valid && b.SpecialRequestDate.String != "" &&
		b.SpecialRequestTime.Valid && b.SpecialRequestTime.String != ""
}

// FormatStudioNumber renders the studio number as {code}-{number} when the
// location has a code, else the bare number. Empty when unallocated.
func (b *Booking) FormatStudioNumber(locationCode string) string {
	if !b.StudioNumber.Valid {
		return ""
	}
	if locationCode != "" {
		return fmt.Sprintf("%s-%d", locationCode, b.StudioNumber.Int64)
	}
	return fmt.Sprintf("%d", b.StudioNumber.Int64)
}

// Response is the enriched booking representation
type Response struct {
	ID                   string `json:"id"`
	CustomerName         string `json:"customer_name"`
	PhoneNumber          string `json:"phone_number"`
	EmergencyPhoneNumber string `json:"emergency_phone_number,omitempty"`
	PhotoshootType       string `json:"photoshoot_type"`

	SessionDate        string `json:"session_date,omitempty"`
	SessionTime        string `json:"session_time,omitempty"`
	SpecialRequestDate string `json:"special_request_date,omitempty"`
	SpecialRequestTime string `json:"special_request_time,omitempty"`

	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`

	LocationID          string `json:"location_id,omitempty"`
	SalesPersonID       string `json:"sales_person_id"`
	StudioNumber        *int64 `json:"studio_number,omitempty"`
	StudioNumberDisplay string `json:"studio_number_display,omitempty"`

	CollectionDate string `json:"collection_date,omitempty"`
	CollectionTime string `json:"collection_time,omitempty"`

	SignatureURL      string `json:"signature_url,omitempty"`
	ConsentFormSigned bool   `json:"consent_form_signed"`

	Notes              string `json:"notes,omitempty"`
	StudioNotes        string `json:"studio_notes,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	Location    *location.Ref  `json:"location"`
	SalesPerson *user.Response `json:"sales_person"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ToResponse converts entity to response; loc and salesPerson may be nil when
// the reference is broken or missing.
func (b *Booking) ToResponse(loc *location.Location, salesPerson *user.User) *Response {
	resp := &Response{
		ID:                b.ID.String(),
		CustomerName:      b.CustomerName,
		PhoneNumber:       b.PhoneNumber,
		PhotoshootType:    string(b.PhotoshootType),
		PaymentMethod:     string(b.PaymentMethod),
		Status:            string(b.Status),
		SalesPersonID:     b.SalesPersonID.String(),
		ConsentFormSigned: b.ConsentFormSigned,
		CreatedAt:         b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         b.UpdatedAt.Format(time.RFC3339),
	}

	if b.EmergencyPhoneNumber.Valid {
		resp.EmergencyPhoneNumber = b.EmergencyPhoneNumber.String
	}
	if b.SessionDate.Valid {
		resp.SessionDate = b.SessionDate.String
	}
	if b.SessionTime.Valid {
		resp.SessionTime = b.SessionTime.String
	}
	if b.SpecialRequestDate.Valid {
		resp.SpecialRequestDate = b.SpecialRequestDate.String
	}
	if b.SpecialRequestTime.Valid {
		resp.SpecialRequestTime = b.SpecialRequestTime.String
	}
	if b.LocationID.Valid {
		resp.LocationID = b.LocationID.UUID.String()
	}
	if b.StudioNumber.Valid {
		n := b.StudioNumber.Int64
		resp.StudioNumber = &n
	}
	if b.CollectionDate.Valid {
		resp.CollectionDate = b.CollectionDate.String
	}
	if b.CollectionTime.Valid {
		resp.CollectionTime = b.CollectionTime.String
	}
	if b.SignaturePath.Valid {
		resp.SignatureURL = b.SignaturePath.String
	}
	if b.Notes.Valid {
		resp.Notes = b.Notes.String
	}
	if b.StudioNotes.Valid {
		resp.StudioNotes = b.StudioNotes.String
	}
	if b.CancellationReason.Valid {
		resp.CancellationReason = b.CancellationReason.String
	}

	var code string
	if loc != nil {
		code = loc.Code
		resp.Location = loc.ToRef()
	}
	resp.StudioNumberDisplay = b.FormatStudioNumber(code)

	if salesPerson != nil {
		resp.SalesPerson = salesPerson.ToResponse()
	}

	return resp
}
