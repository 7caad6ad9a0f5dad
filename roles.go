package funkos

import "strings"

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned on sign up
	RoleUser UserRole = "USER"
	// RoleAdmin can manage the catalog and receives change notifications
	RoleAdmin UserRole = "ADMIN"
)

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(roleStr)))
	return role, IsValidRole(role)
}

// RoleAtLeast checks if role meets the minimum required level
func RoleAtLeast(role, minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleUser:  0,
		RoleAdmin: 1,
	}

	currentLevel, exists := roleHierarchy[role]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// RoleGate maps a token's role claim to an allow or deny decision.
// Every token validation failure is a deny; no error escapes.
type RoleGate struct {
	extractor *TokenExtractor
}

// NewRoleGate builds a gate on top of a claims extractor
func NewRoleGate(extractor *TokenExtractor) *RoleGate {
	return &RoleGate{extractor: extractor}
}

// Authorize allows tokens whose role claim is ranked at or above
// requiredRole in the USER < ADMIN hierarchy
func (g *RoleGate) Authorize(token string, requiredRole UserRole) bool {
	role := g.extractor.ExtractRole(token)
	if role == "" {
		return false
	}

	parsed, ok := ParseRole(role)
	if !ok {
		return false
	}

	return RoleAtLeast(parsed, requiredRole)
}

// AuthorizeClaims applies the same decision to claims already attached to
// a context, for callers that validate once per request
func (g *RoleGate) AuthorizeClaims(claims AuthClaims, requiredRole UserRole) bool {
	if claims == nil {
		return false
	}

	parsed, ok := ParseRole(claims.Role())
	if !ok {
		return false
	}

	return RoleAtLeast(parsed, requiredRole)
}
