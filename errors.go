package funkos

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds identifies credential mismatches
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeUsernameTaken identifies sign ups with a duplicate username
	TextCodeUsernameTaken = "USERNAME_TAKEN"
	// TextCodeEmailTaken identifies sign ups with a duplicate email
	TextCodeEmailTaken = "EMAIL_TAKEN"
	// TextCodeTokenExpired identifies tokens past their expiry
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	// TextCodeTokenMalformed identifies tokens we could not parse or verify
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	// TextCodeMissingSigningKey identifies a misconfigured token service
	TextCodeMissingSigningKey = "MISSING_SIGNING_KEY"
	// TextCodeEmptyPassword identifies empty password input
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
	// TextCodeUnknownRole identifies roles outside the USER/ADMIN set
	TextCodeUnknownRole = "UNKNOWN_ROLE"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound)

// ErrInvalidCredentials is returned for both unknown usernames and password
// mismatches so callers cannot enumerate accounts
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrUsernameTaken is returned when a sign up collides on username
var ErrUsernameTaken = goerrors.New("username already in use", goerrors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(goerrors.CodeConflict)

// ErrEmailTaken is returned when a sign up collides on email
var ErrEmailTaken = goerrors.New("email already in use", goerrors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(goerrors.CodeConflict)

// ErrTokenExpired is the normalized outcome for expired tokens
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is the normalized outcome for every other invalid token:
// empty input, wrong segment count, bad signature, wrong issuer or audience
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrMissingSigningKey aborts token service construction. This is the only
// fatal condition in the package, raised at startup and never per request.
var ErrMissingSigningKey = goerrors.New("signing key is required", goerrors.CategoryInternal).
	WithTextCode(TextCodeMissingSigningKey)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrMismatchedHashAndPassword is the hasher level mismatch error
var ErrMismatchedHashAndPassword = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsConflictError reports whether err carries the conflict category
func IsConflictError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryConflict
	}
	return false
}

// IsNotFoundError reports whether err carries the not found category
func IsNotFoundError(err error) bool {
	if goerrors.IsNotFound(err) {
		return true
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryNotFound
	}
	return false
}
