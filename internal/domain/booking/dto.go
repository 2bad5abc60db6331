package booking

import (
	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/pkg/response"
)

// CreateRequest represents booking creation payload
type CreateRequest struct {
	CustomerName         string `json:"customer_name" validate:"required,min=2,max=200"`
	PhoneNumber          string `json:"phone_number" validate:"required,uk_phone"`
	EmergencyPhoneNumber string `json:"emergency_phone_number" validate:"omitempty,uk_phone"`
	PhotoshootType       string `json:"photoshoot_type" validate:"required,photoshoot_type"`
	SessionDate          string `json:"session_date" validate:"omitempty,datetime=2006-01-02"`
	SessionTime          string `json:"session_time" validate:"omitempty,datetime=15:04"`
	SpecialRequestDate   string `json:"special_request_date" validate:"omitempty,datetime=2006-01-02"`
	SpecialRequestTime   string `json:"special_request_time" validate:"omitempty,datetime=15:04"`
	PaymentMethod        string `json:"payment_method" validate:"required,payment_method"`
	Status               string `json:"status" validate:"omitempty,booking_status"`
	LocationID           string `json:"location_id" validate:"omitempty,uuid"`
	CollectionDate       string `json:"collection_date" validate:"omitempty,datetime=2006-01-02"`
	CollectionTime       string `json:"collection_time" validate:"omitempty,datetime=15:04"`
	Notes                string `json:"notes" validate:"omitempty,max=2000"`
	StudioNotes          string `json:"studio_notes" validate:"omitempty,max=2000"`
}

// UpdateRequest represents booking update payload. Nil fields are left
// untouched; studio number is not updatable here.
type UpdateRequest struct {
	CustomerName         *string `json:"customer_name" validate:"omitempty,min=2,max=200"`
	PhoneNumber          *string `json:"phone_number" validate:"omitempty,uk_phone"`
	EmergencyPhoneNumber *string `json:"emergency_phone_number" validate:"omitempty,uk_phone"`
	PhotoshootType       *string `json:"photoshoot_type" validate:"omitempty,photoshoot_type"`
	SessionDate          *string `json:"session_date" validate:"omitempty,datetime=2006-01-02"`
	SessionTime          *string `json:"session_time" validate:"omitempty,datetime=15:04"`
	SpecialRequestDate   *string `json:"special_request_date" validate:"omitempty,datetime=2006-01-02"`
	SpecialRequestTime   *string `json:"special_request_time" validate:"omitempty,datetime=15:04"`
	PaymentMethod        *string `json:"payment_method" validate:"omitempty,payment_method"`
	Status               *string `json:"status" validate:"omitempty,booking_status"`
	LocationID           *string `json:"location_id" validate:"omitempty,uuid"`
	CollectionDate       *string `json:"collection_date" validate:"omitempty,datetime=2006-01-02"`
	CollectionTime       *string `json:"collection_time" validate:"omitempty,datetime=15:04"`
	Notes                *string `json:"notes" validate:"omitempty,max=2000"`
	StudioNotes          *string `json:"studio_notes" validate:"omitempty,max=2000"`
	CancellationReason   *string `json:"cancellation_reason" validate:"omitempty,max=2000"`
}

// SignatureRequest carries a base64 encoded PNG signature
type SignatureRequest struct {
	Signature string `json:"signature" validate:"required"`
}

// ListQuery holds parsed list parameters
type ListQuery struct {
	LocationID             *uuid.UUID
	Status                 string
	SalesPersonID          *uuid.UUID
	IncludeAllSalesPersons bool
	HasCollectionDate      bool
	Page                   int
	Limit                  int
}

// ListResponse is the paginated listing envelope
type ListResponse struct {
	Bookings   []*Response    `json:"bookings"`
	Pagination *response.Meta `json:"pagination"`
	Summary    Summary        `json:"summary"`
}
