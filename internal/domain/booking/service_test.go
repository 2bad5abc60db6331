package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/location"
	"github.com/studioline/studioline-api/internal/domain/user"
)

type fakeBookingRepo struct {
	bookings    map[uuid.UUID]*Booking
	projections []Projection

	assignCalled bool
	assignNumber int
	assignErr    error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *Booking) error {
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Booking, error) {
	// Deliberately return in reverse to prove order is re-imposed.
	var out []Booking
	for i := len(ids) - 1; i >= 0; i-- {
		if b, ok := f.bookings[ids[i]]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return ErrBookingNotFound
	}
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) ListProjections(ctx context.Context, filter Filter) ([]Projection, error) {
	return f.projections, nil
}

func (f *fakeBookingRepo) AssignStudioNumber(ctx context.Context, bookingID, locationID uuid.UUID) (int, error) {
	f.assignCalled = true
	if f.assignErr != nil {
		return 0, f.assignErr
	}
	if b, ok := f.bookings[bookingID]; ok {
		b.StudioNumber = sql.NullInt64{Int64: int64(f.assignNumber), Valid: true}
		b.Status = StatusConfirmed
	}
	return f.assignNumber, nil
}

func (f *fakeBookingRepo) UpdateSignature(ctx context.Context, id uuid.UUID, path string) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.SignaturePath = sql.NullString{String: path, Valid: true}
	b.ConsentFormSigned = true
	return nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*location.Location
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc *location.Location) error { return nil }
func (f *fakeLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	return f.locations[id], nil
}
func (f *fakeLocationRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]location.Location, error) {
	var out []location.Location
	for _, id := range ids {
		if loc, ok := f.locations[id]; ok {
			out = append(out, *loc)
		}
	}
	return out, nil
}
func (f *fakeLocationRepo) List(ctx context.Context) ([]location.Location, error) { return nil, nil }
func (f *fakeLocationRepo) Update(ctx context.Context, loc *location.Location) error {
	return nil
}
func (f *fakeLocationRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByName(ctx context.Context, name string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	var out []user.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) List(ctx context.Context, role *user.Role) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fixture struct {
	service  *Service
	repo     *fakeBookingRepo
	locRepo  *fakeLocationRepo
	userRepo *fakeUserRepo

	salesPerson uuid.UUID
	locationID  uuid.UUID
}

func newFixture() *fixture {
	repo := newFakeBookingRepo()
	locRepo := &fakeLocationRepo{locations: make(map[uuid.UUID]*location.Location)}
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}

	salesPerson := uuid.New()
	userRepo.users[salesPerson] = &user.User{ID: salesPerson, Name: "jo", Role: user.RoleSalesPerson}

	locationID := uuid.New()
	locRepo.locations[locationID] = &location.Location{ID: locationID, Name: "Leeds City", Code: "LC"}

	return &fixture{
		service:     NewService(repo, locRepo, userRepo, nil, nil, nil),
		repo:        repo,
		locRepo:     locRepo,
		userRepo:    userRepo,
		salesPerson: salesPerson,
		locationID:  locationID,
	}
}

func (fx *fixture) addBooking(b *Booking) *Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.SalesPersonID == uuid.Nil {
		b.SalesPersonID = fx.salesPerson
	}
	if b.Status == "" {
		b.Status = StatusBooked
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
	fx.repo.bookings[b.ID] = b
	return b
}

func TestCreate_NormalizesPhoneAndDefaultsStatus(t *testing.T) {
	fx := newFixture()

	resp, err := fx.service.Create(context.Background(), fx.salesPerson, &CreateRequest{
		CustomerName:   "Alice Smith",
		PhoneNumber:    "0712-345 6789",
		PhotoshootType: "family",
		PaymentMethod:  "CASH",
		SessionDate:    "2024-06-01",
		SessionTime:    "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PhoneNumber != "07123456789" {
		t.Errorf("phone = %q, want normalized digits", resp.PhoneNumber)
	}
	if resp.Status != string(StatusBooked) {
		t.Errorf("status = %q, want BOOKED default", resp.Status)
	}
	if resp.SalesPersonID != fx.salesPerson.String() {
		t.Error("sales person must be the caller")
	}
}

func TestCreate_RejectsMissingSlotForNonTBC(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.Create(context.Background(), fx.salesPerson, &CreateRequest{
		CustomerName:   "Alice Smith",
		PhoneNumber:    "07123456789",
		PhotoshootType: "family",
		PaymentMethod:  "CASH",
	})
	if !errors.Is(err, ErrMissingSessionSlot) {
		t.Fatalf("expected ErrMissingSessionSlot, got %v", err)
	}

	// TBC bookings may omit both slots.
	_, err = fx.service.Create(context.Background(), fx.salesPerson, &CreateRequest{
		CustomerName:   "Alice Smith",
		PhoneNumber:    "07123456789",
		PhotoshootType: "family",
		PaymentMethod:  "CASH",
		Status:         "TBC",
	})
	if err != nil {
		t.Fatalf("TBC without slots should be accepted, got %v", err)
	}
}

func TestAllocate_RequiresLocation(t *testing.T) {
	fx := newFixture()
	b := fx.addBooking(&Booking{
		CustomerName: "Bob",
		PhoneNumber:  "07123456789",
		SessionDate:  ns("2024-06-01"),
		SessionTime:  ns("10:00"),
	})

	_, err := fx.service.AllocateStudioNumber(context.Background(), b.ID)
	if !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
	if fx.repo.assignCalled {
		t.Error("allocation must not reach the store when the precondition fails")
	}
}

func TestAllocate_RejectsSecondAllocationWithoutMutation(t *testing.T) {
	fx := newFixture()
	b := fx.addBooking(&Booking{
		CustomerName: "Bob",
		PhoneNumber:  "07123456789",
		LocationID:   uuid.NullUUID{UUID: fx.locationID, Valid: true},
		StudioNumber: sql.NullInt64{Int64: 5, Valid: true},
		Status:       StatusConfirmed,
	})

	_, err := fx.service.AllocateStudioNumber(context.Background(), b.ID)
	if !errors.Is(err, ErrAlreadyAllocated) {
		t.Fatalf("expected ErrAlreadyAllocated, got %v", err)
	}
	if fx.repo.assignCalled {
		t.Error("a second allocation must not touch the store")
	}
	if got := fx.repo.bookings[b.ID].StudioNumber.Int64; got != 5 {
		t.Errorf("studio number mutated to %d", got)
	}
}

func TestAllocate_FormatsDisplayNumber(t *testing.T) {
	fx := newFixture()
	b := fx.addBooking(&Booking{
		CustomerName: "Bob",
		PhoneNumber:  "07123456789",
		LocationID:   uuid.NullUUID{UUID: fx.locationID, Valid: true},
		SessionDate:  ns("2024-06-01"),
		SessionTime:  ns("10:00"),
	})
	fx.repo.assignNumber = 3

	resp, err := fx.service.AllocateStudioNumber(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StudioNumberDisplay != "LC-3" {
		t.Errorf("display = %q, want LC-3", resp.StudioNumberDisplay)
	}
	if resp.Status != string(StatusConfirmed) {
		t.Errorf("status = %q, want CONFIRMED", resp.Status)
	}
}

func TestAllocate_NotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.AllocateStudioNumber(context.Background(), uuid.New())
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestUpdate_SalesPersonCannotTouchOthersBooking(t *testing.T) {
	fx := newFixture()
	b := fx.addBooking(&Booking{
		CustomerName: "Bob",
		PhoneNumber:  "07123456789",
		SessionDate:  ns("2024-06-01"),
		SessionTime:  ns("10:00"),
	})

	stranger := uuid.New()
	name := "Hijacked"
	_, err := fx.service.Update(context.Background(), stranger, user.RoleSalesPerson, b.ID, &UpdateRequest{
		CustomerName: &name,
	})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if fx.repo.bookings[b.ID].CustomerName != "Bob" {
		t.Error("booking mutated despite ownership rejection")
	}

	// CUSTOMER_SERVICE may touch anyone's booking.
	if _, err := fx.service.Update(context.Background(), stranger, user.RoleCustomerService, b.ID, &UpdateRequest{
		CustomerName: &name,
	}); err != nil {
		t.Fatalf("customer service update failed: %v", err)
	}
}

func TestList_SalesPersonSeesOnlyOwnRows(t *testing.T) {
	fx := newFixture()

	// The filter the service builds is what restricts visibility; assert on it.
	var captured Filter
	fx.repo.projections = nil
	repo := &filterCapturingRepo{fakeBookingRepo: fx.repo, captured: &captured}
	svc := NewService(repo, fx.locRepo, fx.userRepo, nil, nil, nil)

	_, err := svc.List(context.Background(), fx.salesPerson, user.RoleSalesPerson, ListQuery{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.SalesPersonID == nil || *captured.SalesPersonID != fx.salesPerson {
		t.Error("sales person listing must be pinned to their own id")
	}

	// includeAllSalesPersons widens the view only together with a location.
	locID := fx.locationID
	_, err = svc.List(context.Background(), fx.salesPerson, user.RoleSalesPerson, ListQuery{
		IncludeAllSalesPersons: true,
		LocationID:             &locID,
		Page:                   1,
		Limit:                  20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.SalesPersonID != nil {
		t.Error("includeAllSalesPersons with a location must lift the own-rows pin")
	}

	_, err = svc.List(context.Background(), fx.salesPerson, user.RoleSalesPerson, ListQuery{
		IncludeAllSalesPersons: true,
		Page:                   1,
		Limit:                  20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.SalesPersonID == nil {
		t.Error("includeAllSalesPersons without a location must keep the own-rows pin")
	}
}

type filterCapturingRepo struct {
	*fakeBookingRepo
	captured *Filter
}

func (f *filterCapturingRepo) ListProjections(ctx context.Context, filter Filter) ([]Projection, error) {
	*f.captured = filter
	return f.fakeBookingRepo.ListProjections(ctx, filter)
}

func TestList_SortsPagesAndSummarizesFullSet(t *testing.T) {
	fx := newFixture()

	dates := []string{"2024-01-03", "2024-01-01", "2024-01-05", "2024-01-02", "2024-01-04"}
	ordered := make([]uuid.UUID, 5)
	for i, d := range dates {
		b := fx.addBooking(&Booking{
			CustomerName:  "Customer",
			PhoneNumber:   "07123456789",
			SessionDate:   ns(d),
			SessionTime:   ns("10:00"),
			SalesPersonID: fx.salesPerson,
		})
		fx.repo.projections = append(fx.repo.projections, Projection{
			ID:          b.ID,
			SessionDate: b.SessionDate,
			SessionTime: b.SessionTime,
			Status:      b.Status,
		})
		ordered[i] = b.ID
	}
	// Sorted by date: 01-01, 01-02, 01-03, 01-04, 01-05
	sorted := []uuid.UUID{ordered[1], ordered[3], ordered[0], ordered[4], ordered[2]}

	resp, err := fx.service.List(context.Background(), fx.salesPerson, user.RoleAdmin, ListQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Bookings) != 2 {
		t.Fatalf("expected 2 rows on page 2, got %d", len(resp.Bookings))
	}
	if resp.Bookings[0].ID != sorted[2].String() || resp.Bookings[1].ID != sorted[3].String() {
		t.Error("page 2 must hold rows 3 and 4 of the globally sorted sequence")
	}

	if resp.Pagination.Total != 5 || resp.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v, want total 5 over 3 pages", resp.Pagination)
	}

	// Summary spans the whole filtered set, not the page.
	if resp.Summary.Booked != 5 || resp.Summary.Total != 5 {
		t.Errorf("summary = %+v, want 5 BOOKED over 5 total", resp.Summary)
	}

	// Enrichment resolved the sales person for each row.
	for _, b := range resp.Bookings {
		if b.SalesPerson == nil || b.SalesPerson.Name != "jo" {
			t.Error("expected sales person enrichment on every row")
		}
	}
}

func TestList_BrokenReferenceResolvesToNull(t *testing.T) {
	fx := newFixture()

	ghost := uuid.New() // location that no longer exists
	b := fx.addBooking(&Booking{
		CustomerName: "Customer",
		PhoneNumber:  "07123456789",
		SessionDate:  ns("2024-01-01"),
		SessionTime:  ns("09:00"),
		LocationID:   uuid.NullUUID{UUID: ghost, Valid: true},
	})
	fx.repo.projections = []Projection{{ID: b.ID, SessionDate: b.SessionDate, SessionTime: b.SessionTime, Status: b.Status}}

	resp, err := fx.service.List(context.Background(), fx.salesPerson, user.RoleAdmin, ListQuery{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("broken reference must not fail the request: %v", err)
	}
	if resp.Bookings[0].Location != nil {
		t.Error("missing location must resolve to null")
	}
}

func TestGet_NotFound(t *testing.T) {
	fx := newFixture()
	if _, err := fx.service.Get(context.Background(), uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}
