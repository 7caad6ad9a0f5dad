package funkos

import (
	"strings"

	"github.com/google/uuid"
)

// UserInfo is the flattened claim view used by boundary layers
type UserInfo struct {
	UserID  uuid.UUID
	Role    string
	IsAdmin bool
}

// TokenExtractor derives individual claims from raw tokens. Every
// operation validates the token first and returns a zero value on any
// failure; no error ever reaches the caller. Authorization checks stay
// simple boolean or optional tests.
type TokenExtractor struct {
	validator TokenValidator
	logger    Logger
}

// NewTokenExtractor builds an extractor over a validator, usually the
// TokenService itself
func NewTokenExtractor(validator TokenValidator, logger Logger) *TokenExtractor {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenExtractor{validator: validator, logger: logger}
}

// ExtractClaims returns the validated claim set or nil
func (e *TokenExtractor) ExtractClaims(token string) AuthClaims {
	claims, err := e.validator.Validate(token)
	if err != nil {
		e.logger.Debug("token rejected during claim extraction", "error", err)
		return nil
	}
	return claims
}

// ExtractUsername returns the subject claim or the empty string
func (e *TokenExtractor) ExtractUsername(token string) string {
	claims := e.ExtractClaims(token)
	if claims == nil {
		return ""
	}
	return claims.Subject()
}

// ExtractUserID returns the identity id claim or uuid.Nil
func (e *TokenExtractor) ExtractUserID(token string) uuid.UUID {
	claims := e.ExtractClaims(token)
	if claims == nil {
		return uuid.Nil
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return uuid.Nil
	}
	return id
}

// ExtractRole returns the role claim or the empty string
func (e *TokenExtractor) ExtractRole(token string) string {
	claims := e.ExtractClaims(token)
	if claims == nil {
		return ""
	}
	return claims.Role()
}

// ExtractEmail returns the email claim or the empty string
func (e *TokenExtractor) ExtractEmail(token string) string {
	claims := e.ExtractClaims(token)
	if claims == nil {
		return ""
	}
	return claims.Email()
}

// IsAdmin reports whether the role claim matches ADMIN, compared
// case-insensitively. Invalid tokens are never admins.
func (e *TokenExtractor) IsAdmin(token string) bool {
	claims := e.ExtractClaims(token)
	if claims == nil {
		return false
	}
	return claims.IsAdmin()
}

// ExtractUserInfo returns the flattened claim view, zero valued when the
// token fails validation
func (e *TokenExtractor) ExtractUserInfo(token string) UserInfo {
	claims := e.ExtractClaims(token)
	if claims == nil {
		return UserInfo{}
	}

	id, _ := uuid.Parse(claims.UserID())
	return UserInfo{
		UserID:  id,
		Role:    claims.Role(),
		IsAdmin: claims.IsAdmin(),
	}
}

// IsValidTokenFormat is a syntactic pre-check only: three non-empty dot
// separated segments. It implies nothing about cryptographic validity.
func (e *TokenExtractor) IsValidTokenFormat(token string) bool {
	if token == "" {
		return false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	for _, part := range parts {
		if part == "" {
			return false
		}
	}

	return true
}
