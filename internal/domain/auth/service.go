package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/studioline/studioline-api/internal/domain/user"
	"github.com/studioline/studioline-api/internal/pkg/jwt"
	"github.com/studioline/studioline-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo  user.Repository
	jwt       *jwt.Service
	refresh   *RefreshTokenStore
	accessTTL time.Duration
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, refresh *RefreshTokenStore, accessTTL time.Duration) *Service {
	return &Service{
		userRepo:  userRepo,
		jwt:       jwtService,
		refresh:   refresh,
		accessTTL: accessTTL,
	}
}

// Login authenticates by unique name and password
func (s *Service) Login(ctx context.Context, name, plainPassword string) (*user.User, *TokenPair, error) {
	u, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !password.Verify(plainPassword, u.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

// Register creates a staff account. Caller authorization is checked at the boundary.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*user.User, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        sql.NullString{String: req.Email, Valid: req.Email != ""},
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Refresh rotates a refresh token and issues a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	live, err := s.refresh.Validate(ctx, claims.ID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrRefreshTokenRevoked
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidRefreshToken
	}

	// Rotate: old token id stops working once a new pair is issued
	if err := s.refresh.Revoke(ctx, claims.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

// GetUser returns the authenticated user's account
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, jti, expiresAt, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.refresh.Save(ctx, jti, u.ID, time.Until(expiresAt)); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
