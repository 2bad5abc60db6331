package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studioline/studioline-api/internal/middleware"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleAdmin, ActionUserManage, true},
		{RoleAdmin, ActionBookingAllocate, true},
		{RoleSalesPerson, ActionBookingCreate, true},
		{RoleSalesPerson, ActionBookingAllocate, false},
		{RoleSalesPerson, ActionLocationManage, false},
		{RoleCustomerService, ActionScheduleManage, true},
		{RoleCustomerService, ActionUserManage, false},
		{RoleStudio, ActionBookingCreate, false},
		{RoleStudio, ActionBookingAllocate, true},
		{RoleSales, ActionBookingAllocate, true},
		{Role("UNKNOWN"), ActionBookingView, false},
	}

	for _, tt := range tests {
		if got := Can(tt.role, tt.action); got != tt.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestCanMutateOthersBookings(t *testing.T) {
	if CanMutateOthersBookings(RoleSalesPerson) {
		t.Error("sales persons are restricted to their own bookings")
	}
	for _, role := range []Role{RoleAdmin, RoleCustomerService, RoleStudio, RoleSales} {
		if !CanMutateOthersBookings(role) {
			t.Errorf("%s should be allowed to mutate any booking", role)
		}
	}
}

func TestRequireCapability(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireCapability(ActionLocationManage)(next)

	t.Run("allowed role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/locations", nil)
		req = req.WithContext(middleware.WithRole(req.Context(), string(RoleAdmin)))
		rr := httptest.NewRecorder()

		guard.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
	})

	t.Run("forbidden role is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/locations", nil)
		req = req.WithContext(middleware.WithRole(req.Context(), string(RoleSalesPerson)))
		rr := httptest.NewRecorder()

		guard.ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rr.Code)
		}
	})

	t.Run("missing role is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/locations", nil)
		rr := httptest.NewRecorder()

		guard.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})
}
