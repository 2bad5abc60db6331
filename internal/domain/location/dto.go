package location

// CreateRequest for creating a location
type CreateRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=100"`
	SalesPersonIDs []string `json:"sales_person_ids" validate:"dive,uuid"`
	Dates          []string `json:"dates" validate:"dive,datetime=2006-01-02"`
}

// UpdateRequest for updating a location
type UpdateRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=2,max=100"`
	SalesPersonIDs []string `json:"sales_person_ids" validate:"omitempty,dive,uuid"`
	Dates          []string `json:"dates" validate:"omitempty,dive,datetime=2006-01-02"`
}
