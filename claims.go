package funkos

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims is the validated claim set carried by a token
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Role() string
	TokenID() string
	IsAdmin() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The subject is
// the username; the identity id travels in uid.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string   `json:"uid,omitempty"`
	UserEmail string   `json:"email,omitempty"`
	UserRole  UserRole `json:"role,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim, the username
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the identity id
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the email claim
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Role returns the role claim
func (c *JWTClaims) Role() string {
	return string(c.UserRole)
}

// TokenID returns the unique token id. It distinguishes replays in audit
// trails; it is not a revocation handle.
func (c *JWTClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

// IsAdmin compares the role claim case-insensitively against ADMIN
func (c *JWTClaims) IsAdmin() bool {
	role, ok := ParseRole(string(c.UserRole))
	return ok && role == RoleAdmin
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureTokenID backfills a fresh random jti when the claims carry none
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
