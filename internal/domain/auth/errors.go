package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid name or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)
