package domain

import "net/http"

// Error is a domain failure carrying the HTTP status it maps to at the API
// boundary. Anything that reaches the boundary without one is a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	// Registration conflicts
	ErrAccountExists = &Error{http.StatusConflict, "User already exists"}
	ErrEmailTaken    = &Error{http.StatusConflict, "Email already in use"}

	// Authentication failures. Unknown email, missing credentials and a wrong
	// password all collapse into ErrInvalidCredentials so callers cannot probe
	// which addresses are registered.
	ErrInvalidCredentials    = &Error{http.StatusUnauthorized, "Invalid email or password"}
	ErrInvalidDeviceID       = &Error{http.StatusUnauthorized, "Invalid device ID"}
	ErrDeviceLoginNotAllowed = &Error{http.StatusForbidden, "Device login not allowed for this user"}

	// Token verification
	ErrTokenExpired        = &Error{http.StatusUnauthorized, "Token expired"}
	ErrTokenInvalid        = &Error{http.StatusUnauthorized, "Invalid token"}
	ErrRefreshTokenExpired = &Error{http.StatusUnauthorized, "Refresh token expired"}
	ErrRefreshTokenInvalid = &Error{http.StatusUnauthorized, "Invalid refresh token"}

	// Stored refresh token mismatch, or subject account no longer exists.
	ErrInvalidRefreshToken = &Error{http.StatusUnauthorized, "Invalid refresh token"}

	ErrAccountNotFound = &Error{http.StatusNotFound, "Account not found"}
)
