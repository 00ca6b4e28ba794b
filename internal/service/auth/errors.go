package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token signature doesn't match, the signing
	// method is not accepted, or required claims are missing.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMalformedToken indicates the token or Authorization header is not
	// structurally valid.
	ErrMalformedToken = errors.New("malformed authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (iat or nbf in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrIdentityNotFound indicates a verified token names a user that no
	// longer exists.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrForbidden indicates the caller does not own the resource.
	ErrForbidden = errors.New("not authorized to access this resource")

	// ErrPasswordMismatch indicates a password does not match its stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
)

// IsAuthenticationError reports whether err means the caller could not be
// authenticated, as opposed to an internal failure while trying.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrIdentityNotFound)
}
