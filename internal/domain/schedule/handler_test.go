package schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/middleware"
)

type fakeRepo struct {
	entries   map[Kind][]Entry
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[Kind][]Entry)}
}

func (f *fakeRepo) Create(ctx context.Context, e *Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries[e.Kind] = append(f.entries[e.Kind], *e)
	return nil
}

func (f *fakeRepo) ListByKind(ctx context.Context, kind Kind) ([]Entry, error) {
	return f.entries[kind], nil
}

func (f *fakeRepo) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	for i, e := range f.entries[kind] {
		if e.ID == id {
			f.entries[kind] = append(f.entries[kind][:i], f.entries[kind][i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

func adminIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithUserID(r.Context(), uuid.New())
		ctx = middleware.WithRole(ctx, string(user.RoleAdmin))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func serve(repo Repository, req *http.Request) *httptest.ResponseRecorder {
	router := NewHandler(repo).Routes(adminIdentity)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreate_ValueFormatPerCatalog(t *testing.T) {
	tests := []struct {
		catalog string
		value   string
		want    int
	}{
		{"collection-dates", "2024-06-01", http.StatusCreated},
		{"collection-dates", "10:00", http.StatusBadRequest},
		{"session-times", "10:00", http.StatusCreated},
		{"session-times", "2024-06-01", http.StatusBadRequest},
		{"special-request-times", "17:30", http.StatusCreated},
	}

	for _, tt := range tests {
		repo := newFakeRepo()
		req := httptest.NewRequest(http.MethodPost, "/"+tt.catalog, strings.NewReader(`{"value":"`+tt.value+`"}`))
		rr := serve(repo, req)
		if rr.Code != tt.want {
			t.Errorf("POST /%s value %q: status = %d, want %d", tt.catalog, tt.value, rr.Code, tt.want)
		}
	}
}

func TestUnknownCatalogIs404(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/holidays", nil)
	rr := serve(newFakeRepo(), req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestDuplicateEntryIs409(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = ErrDuplicateEntry

	req := httptest.NewRequest(http.MethodPost, "/session-times", strings.NewReader(`{"value":"10:00"}`))
	rr := serve(repo, req)
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
}

func TestDeleteEntry(t *testing.T) {
	repo := newFakeRepo()
	entry := Entry{ID: uuid.New(), Kind: KindSessionTime, Value: "10:00"}
	repo.entries[KindSessionTime] = []Entry{entry}

	req := httptest.NewRequest(http.MethodDelete, "/session-times/"+entry.ID.String(), nil)
	rr := serve(repo, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/session-times/"+uuid.NewString(), nil)
	rr = serve(repo, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing entry: status = %d, want 404", rr.Code)
	}
}
