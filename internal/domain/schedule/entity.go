package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies a slot catalog
type Kind string

const (
	KindCollectionDate     Kind = "collection_date"
	KindSessionTime        Kind = "session_time"
	KindSpecialRequestTime Kind = "special_request_time"
)

// ValidKinds returns all slot catalog kinds
func ValidKinds() []Kind {
	return []Kind{KindCollectionDate, KindSessionTime, KindSpecialRequestTime}
}

// Entry is a single value in a slot catalog: an ISO date for collection
// dates, an HH:MM time for session and special-request times.
type Entry struct {
	ID        uuid.UUID `db:"id"`
	Kind      Kind      `db:"kind"`
	Value     string    `db:"value"`
	CreatedAt time.Time `db:"created_at"`
}

// Response is the public catalog entry representation
type Response struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// ToResponse converts entry to response
func (e *Entry) ToResponse() *Response {
	return &Response{
		ID:    e.ID.String(),
		Value: e.Value,
	}
}

// CreateRequest for adding a catalog entry
type CreateRequest struct {
	Value string `json:"value" validate:"required,max=10"`
}
