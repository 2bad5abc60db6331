package booking

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/event"
	"github.com/studioline/studioline-api/internal/domain/location"
	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/pkg/imaging"
	"github.com/studioline/studioline-api/internal/pkg/response"
	"github.com/studioline/studioline-api/internal/pkg/storage"
)

// Service handles booking business logic
type Service struct {
	repo         Repository
	locationRepo location.Repository
	userRepo     user.Repository
	storage      storage.Storage
	normalizer   *imaging.Normalizer
	hub          *event.Hub
}

// NewService creates new booking service
func NewService(
	repo Repository,
	locationRepo location.Repository,
	userRepo user.Repository,
	store storage.Storage,
	normalizer *imaging.Normalizer,
	hub *event.Hub,
) *Service {
	return &Service{
		repo:         repo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		storage:      store,
		normalizer:   normalizer,
		hub:          hub,
	}
}

// Create registers a new booking for the calling sales person
func (s *Service) Create(ctx context.Context, callerID uuid.UUID, req *CreateRequest) (*Response, error) {
	phone, err := normalizedPhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:             uuid.New(),
		CustomerName:   req.CustomerName,
		PhoneNumber:    phone,
		PhotoshootType: PhotoshootType(req.PhotoshootType),
		PaymentMethod:  PaymentMethod(req.PaymentMethod),
		Status:         StatusBooked,
		SalesPersonID:  callerID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if req.EmergencyPhoneNumber != "" {
		emergency, err := normalizedPhone(req.EmergencyPhoneNumber)
		if err != nil {
			return nil, err
		}
		b.EmergencyPhoneNumber = nullString(emergency)
	}
	if req.Status != "" {
		b.Status = Status(strings.ToUpper(req.Status))
	}

	b.SessionDate = nullString(req.SessionDate)
	b.SessionTime = nullString(req.SessionTime)
	b.SpecialRequestDate = nullString(req.SpecialRequestDate)
	b.SpecialRequestTime = nullString(req.SpecialRequestTime)
	b.CollectionDate = nullString(req.CollectionDate)
	b.CollectionTime = nullString(req.CollectionTime)
	b.Notes = nullString(req.Notes)
	b.StudioNotes = nullString(req.StudioNotes)

	if req.LocationID != "" {
		locID, err := uuid.Parse(req.LocationID)
		if err != nil {
			return nil, ErrLocationNotFound
		}
		loc, err := s.locationRepo.GetByID(ctx, locID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, ErrLocationNotFound
		}
		b.LocationID = uuid.NullUUID{UUID: locID, Valid: true}
	}

	if b.Status != StatusTBC && !b.HasSessionSlot() && !b.HasSpecialRequestSlot() {
		return nil, ErrMissingSessionSlot
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, event.TypeBookingCreated, b)
	return s.enrichOne(ctx, b)
}

// Get returns an enriched booking by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Response, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return s.enrichOne(ctx, b)
}

// Update applies a partial update. Sales persons may only touch their own
// bookings; the studio number is never written here.
func (s *Service) Update(ctx context.Context, callerID uuid.UUID, callerRole user.Role, id uuid.UUID, req *UpdateRequest) (*Response, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !user.CanMutateOthersBookings(callerRole) && b.SalesPersonID != callerID {
		return nil, ErrNotOwner
	}

	if req.CustomerName != nil {
		b.CustomerName = *req.CustomerName
	}
	if req.PhoneNumber != nil {
		phone, err := normalizedPhone(*req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		b.PhoneNumber = phone
	}
	if req.EmergencyPhoneNumber != nil {
		if *req.EmergencyPhoneNumber == "" {
			b.EmergencyPhoneNumber = sql.NullString{}
		} else {
			emergency, err := normalizedPhone(*req.EmergencyPhoneNumber)
			if err != nil {
				return nil, err
			}
			b.EmergencyPhoneNumber = nullString(emergency)
		}
	}
	if req.PhotoshootType != nil {
		b.PhotoshootType = PhotoshootType(*req.PhotoshootType)
	}
	if req.SessionDate != nil {
		b.SessionDate = nullString(*req.SessionDate)
	}
	if req.SessionTime != nil {
		b.SessionTime = nullString(*req.SessionTime)
	}
	if req.SpecialRequestDate != nil {
		b.SpecialRequestDate = nullString(*req.SpecialRequestDate)
	}
	if req.SpecialRequestTime != nil {
		b.SpecialRequestTime = nullString(*req.SpecialRequestTime)
	}
	if req.PaymentMethod != nil {
		b.PaymentMethod = PaymentMethod(*req.PaymentMethod)
	}
	if req.Status != nil {
		b.Status = Status(strings.ToUpper(*req.Status))
	}
	if req.CollectionDate != nil {
		b.CollectionDate = nullString(*req.CollectionDate)
	}
	if req.CollectionTime != nil {
		b.CollectionTime = nullString(*req.CollectionTime)
	}
	if req.Notes != nil {
		b.Notes = nullString(*req.Notes)
	}
	if req.StudioNotes != nil {
		b.StudioNotes = nullString(*req.StudioNotes)
	}
	if req.CancellationReason != nil {
		b.CancellationReason = nullString(*req.CancellationReason)
	}

	if req.LocationID != nil {
		if *req.LocationID == "" {
			b.LocationID = uuid.NullUUID{}
		} else {
			locID, err := uuid.Parse(*req.LocationID)
			if err != nil {
				return nil, ErrLocationNotFound
			}
			loc, err := s.locationRepo.GetByID(ctx, locID)
			if err != nil {
				return nil, err
			}
			if loc == nil {
				return nil, ErrLocationNotFound
			}
			b.LocationID = uuid.NullUUID{UUID: locID, Valid: true}
		}
	}

	if b.Status != StatusTBC && !b.HasSessionSlot() && !b.HasSpecialRequestSlot() {
		return nil, ErrMissingSessionSlot
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if b.Status == StatusCancelled {
		s.publish(ctx, event.TypeBookingCancelled, b)
	} else {
		s.publish(ctx, event.TypeBookingUpdated, b)
	}
	return s.enrichOne(ctx, b)
}

// Delete removes a booking, subject to the same ownership rule as Update
func (s *Service) Delete(ctx context.Context, callerID uuid.UUID, callerRole user.Role, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if !user.CanMutateOthersBookings(callerRole) && b.SalesPersonID != callerID {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, event.TypeBookingDeleted, b)
	return nil
}

// AllocateStudioNumber assigns the next studio number at the booking's
// location and marks the booking CONFIRMED. Preconditions are checked before
// any state is touched.
func (s *Service) AllocateStudioNumber(ctx context.Context, id uuid.UUID) (*Response, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !b.LocationID.Valid {
		return nil, ErrNoLocation
	}
	if b.StudioNumber.Valid {
		return nil, ErrAlreadyAllocated
	}

	loc, err := s.locationRepo.GetByID(ctx, b.LocationID.UUID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}

	number, err := s.repo.AssignStudioNumber(ctx, b.ID, b.LocationID.UUID)
	if err != nil {
		return nil, err
	}

	b.StudioNumber = sql.NullInt64{Int64: int64(number), Valid: true}
	b.Status = StatusConfirmed

	s.publish(ctx, event.TypeBookingConfirmed, b)
	return s.enrichOne(ctx, b)
}

// List produces the filtered, sorted, paginated booking list with a full-set
// status summary. Sorting and summarizing happen over the entire filtered set
// before the page is sliced.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, callerRole user.Role, q ListQuery) (*ListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}

	f := Filter{
		LocationID:        q.LocationID,
		SalesPersonID:     q.SalesPersonID,
		HasCollectionDate: q.HasCollectionDate,
	}
	if q.Status != "" {
		st := Status(strings.ToUpper(q.Status))
		f.Status = &st
	}

	// SALES_PERSON sees only its own rows unless explicitly widening the
	// view to a single location.
	if callerRole == user.RoleSalesPerson && !(q.IncludeAllSalesPersons && q.LocationID != nil) {
		own := callerID
		f.SalesPersonID = &own
	}

	projections, err := s.repo.ListProjections(ctx, f)
	if err != nil {
		return nil, err
	}

	summary := summarize(projections)
	sortProjections(projections, q.HasCollectionDate)
	ids := paginate(projections, q.Page, q.Limit)

	rows, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Re-impose the sorted order; GetByIDs guarantees none.
	byID := make(map[uuid.UUID]*Booking, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	page := make([]*Booking, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			page = append(page, b)
		}
	}

	enriched, err := s.enrichMany(ctx, page)
	if err != nil {
		return nil, err
	}

	totalPages := (summary.Total + q.Limit - 1) / q.Limit
	return &ListResponse{
		Bookings: enriched,
		Pagination: &response.Meta{
			Total:      summary.Total,
			Page:       q.Page,
			Limit:      q.Limit,
			TotalPages: totalPages,
		},
		Summary: summary,
	}, nil
}

// enrichOne resolves the booking's location and sales person references.
// Broken references resolve to null rather than failing the request.
func (s *Service) enrichOne(ctx context.Context, b *Booking) (*Response, error) {
	var loc *location.Location
	if b.LocationID.Valid {
		found, err := s.locationRepo.GetByID(ctx, b.LocationID.UUID)
		if err != nil {
			return nil, err
		}
		loc = found
	}

	salesPerson, err := s.userRepo.GetByID(ctx, b.SalesPersonID)
	if err != nil {
		return nil, err
	}

	return s.finish(b, loc, salesPerson), nil
}

// enrichMany resolves references for a page with one query per table
func (s *Service) enrichMany(ctx context.Context, page []*Booking) ([]*Response, error) {
	locationIDs := make([]uuid.UUID, 0, len(page))
	userIDs := make([]uuid.UUID, 0, len(page))
	seenLoc := make(map[uuid.UUID]bool)
	seenUser := make(map[uuid.UUID]bool)
	for _, b := range page {
		if b.LocationID.Valid && !seenLoc[b.LocationID.UUID] {
			seenLoc[b.LocationID.UUID] = true
			locationIDs = append(locationIDs, b.LocationID.UUID)
		}
		if !seenUser[b.SalesPersonID] {
			seenUser[b.SalesPersonID] = true
			userIDs = append(userIDs, b.SalesPersonID)
		}
	}

	locations, err := s.locationRepo.GetByIDs(ctx, locationIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	locByID := make(map[uuid.UUID]*location.Location, len(locations))
	for i := range locations {
		locByID[locations[i].ID] = &locations[i]
	}
	userByID := make(map[uuid.UUID]*user.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	out := make([]*Response, 0, len(page))
	for _, b := range page {
		var loc *location.Location
		if b.LocationID.Valid {
			loc = locByID[b.LocationID.UUID]
		}
		out = append(out, s.finish(b, loc, userByID[b.SalesPersonID]))
	}
	return out, nil
}

func (s *Service) finish(b *Booking, loc *location.Location, salesPerson *user.User) *Response {
	resp := b.ToResponse(loc, salesPerson)
	if b.SignaturePath.Valid && s.storage != nil {
		resp.SignatureURL = s.storage.GetURL(b.SignaturePath.String)
	}
	return resp
}

func (s *Service) publish(ctx context.Context, t event.Type, b *Booking) {
	if s.hub == nil {
		return
	}
	evt := event.Event{
		Type:      t,
		BookingID: b.ID.String(),
		Status:    string(b.Status),
	}
	if b.LocationID.Valid {
		evt.LocationID = b.LocationID.UUID.String()
	}
	s.hub.Publish(ctx, evt)
}

func normalizedPhone(raw string) (string, error) {
	phone := NormalizePhone(raw)
	if !IsValidPhone(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
