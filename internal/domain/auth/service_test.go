package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/pkg/jwt"
	"github.com/studioline/studioline-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byName map[string]*user.User
	byID   map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*user.User), byID: make(map[uuid.UUID]*user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.byName[u.Name] = u
	f.byID[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) GetByName(ctx context.Context, name string) (*user.User, error) {
	return f.byName[name], nil
}
func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) List(ctx context.Context, role *user.Role) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func newTestService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	// No Redis in tests: refresh tokens are accepted on signature alone.
	return NewService(repo, jwtService, NewRefreshTokenStore(nil), 15*time.Minute), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, name, plain string, role user.Role) *user.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &user.User{ID: uuid.New(), Name: name, PasswordHash: hash, Role: role}
	repo.byName[name] = u
	repo.byID[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "correct-horse", user.RoleAdmin)

	u, tokens, err := svc.Login(context.Background(), "admin", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if u.Name != "admin" {
		t.Errorf("user = %q", u.Name)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if tokens.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in = %d", tokens.ExpiresIn)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "correct-horse", user.RoleAdmin)

	if _, _, err := svc.Login(context.Background(), "admin", "battery-staple"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	if _, _, err := svc.Login(context.Background(), "nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "correct-horse", user.RoleAdmin)

	_, tokens, err := svc.Login(context.Background(), "admin", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, repo := newTestService(t)
	u := seedUser(t, repo, "admin", "correct-horse", user.RoleAdmin)

	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	access, err := jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token must not pass as refresh token, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService(t)

	u, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "newstaff",
		Password: "a-long-password",
		Role:     string(user.RoleCustomerService),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.PasswordHash == "a-long-password" {
		t.Error("password stored in plain text")
	}
	if !password.Verify("a-long-password", u.PasswordHash) {
		t.Error("stored hash does not verify")
	}
	if repo.byName["newstaff"] == nil {
		t.Error("user not persisted")
	}
}
