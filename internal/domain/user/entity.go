package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleSalesPerson     Role = "SALES_PERSON"
	RoleCustomerService Role = "CUSTOMER_SERVICE"
	RoleStudio          Role = "STUDIO"
	RoleSales           Role = "SALES"
)

// User represents a staff account (matches users table)
type User struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Email        sql.NullString `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Role         Role           `db:"role"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSalesPerson returns true if user creates bookings for their own customers
func (u *User) IsSalesPerson() bool {
	return u.Role == RoleSalesPerson
}

// ValidRoles returns list of valid roles
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleSalesPerson, RoleCustomerService, RoleStudio, RoleSales}
}

// IsValidRole checks if role is valid
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}

// Response is the public user representation
type Response struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// ToResponse converts entity to response
func (u *User) ToResponse() *Response {
	resp := &Response{
		ID:   u.ID.String(),
		Name: u.Name,
		Role: string(u.Role),
	}
	if u.Email.Valid {
		resp.Email = u.Email.String
	}
	return resp
}
