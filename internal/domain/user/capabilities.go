package user

import (
	"net/http"

	"github.com/studioline/studioline-api/internal/middleware"
	"github.com/studioline/studioline-api/internal/pkg/response"
)

// Action represents a capability checked once at the request boundary
type Action string

const (
	// Bookings
	ActionBookingCreate   Action = "booking.create"
	ActionBookingView     Action = "booking.view"
	ActionBookingUpdate   Action = "booking.update"
	ActionBookingDelete   Action = "booking.delete"
	ActionBookingAllocate Action = "booking.allocate"
	ActionBookingSign     Action = "booking.sign"

	// Reference data
	ActionLocationManage Action = "location.manage"
	ActionScheduleManage Action = "schedule.manage"
	ActionSettingsManage Action = "settings.manage"

	// Accounts
	ActionUserManage Action = "user.manage"
)

// roleActions maps roles to the actions they may perform. SALES_PERSON booking
// mutations are additionally restricted to their own bookings in the service.
var roleActions = map[Role][]Action{
	RoleAdmin: {
		ActionBookingCreate, ActionBookingView, ActionBookingUpdate, ActionBookingDelete,
		ActionBookingAllocate, ActionBookingSign,
		ActionLocationManage, ActionScheduleManage, ActionSettingsManage, ActionUserManage,
	},
	RoleCustomerService: {
		ActionBookingCreate, ActionBookingView, ActionBookingUpdate, ActionBookingDelete,
		ActionBookingAllocate, ActionBookingSign,
		ActionScheduleManage,
	},
	RoleStudio: {
		ActionBookingView, ActionBookingUpdate, ActionBookingDelete,
		ActionBookingAllocate, ActionBookingSign,
	},
	RoleSales: {
		ActionBookingCreate, ActionBookingView, ActionBookingUpdate, ActionBookingDelete,
		ActionBookingAllocate, ActionBookingSign,
	},
	RoleSalesPerson: {
		ActionBookingCreate, ActionBookingView, ActionBookingUpdate, ActionBookingDelete,
		ActionBookingSign,
	},
}

// Can reports whether the role may perform the action
func Can(role Role, action Action) bool {
	for _, a := range roleActions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// CanMutateOthersBookings reports whether the role may update or delete
// bookings created by other sales persons.
func CanMutateOthersBookings(role Role) bool {
	switch role {
	case RoleAdmin, RoleCustomerService, RoleStudio, RoleSales:
		return true
	}
	return false
}

// RequireCapability returns middleware enforcing a capability check
func RequireCapability(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := Role(middleware.GetRole(r.Context()))
			if role == "" {
				response.Unauthorized(w, "Missing caller identity")
				return
			}
			if !Can(role, action) {
				response.Forbidden(w, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
