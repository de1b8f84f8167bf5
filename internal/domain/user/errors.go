package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrInvalidClaims           = errors.New("token claims are missing or invalid")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
