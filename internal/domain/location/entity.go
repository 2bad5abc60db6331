package location

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Location represents a studio location
type Location struct {
	ID             uuid.UUID      `db:"id"`
	Name           string         `db:"name"`
	Code           string         `db:"code"`
	SalesPersonIDs pq.StringArray `db:"sales_person_ids"`
	Dates          pq.StringArray `db:"dates"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// Response is the public location representation
type Response struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	SalesPersonIDs []string `json:"sales_person_ids"`
	Dates          []string `json:"dates"`
	CreatedAt      string   `json:"created_at"`
}

// ToResponse converts entity to response
func (l *Location) ToResponse() *Response {
	return &Response{
		ID:             l.ID.String(),
		Name:           l.Name,
		Code:           l.Code,
		SalesPersonIDs: append([]string{}, l.SalesPersonIDs...),
		Dates:          append([]string{}, l.Dates...),
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
}

// Ref is the compact location reference embedded in booking responses
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ToRef converts entity to a compact reference
func (l *Location) ToRef() *Ref {
	return &Ref{
		ID:   l.ID.String(),
		Name: l.Name,
		Code: l.Code,
	}
}
