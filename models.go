package funkos

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the identity model. Username and email carry unique constraints
// as defense in depth; the workflow level duplicate check in Auther remains
// the primary guard and is intentionally not transactional.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// PublicUser is the outward projection of a User. It never carries the
// credential hash.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     UserRole  `json:"role"`
}

// Public returns the outward projection of the user
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Identity adapts the record to the Identity interface used by the
// token service
func (u *User) Identity() Identity {
	return userIdentity{
		id:       u.ID.String(),
		username: u.Username,
		email:    u.Email,
		role:     string(u.Role),
	}
}

type userIdentity struct {
	id       string
	username string
	email    string
	role     string
}

func (a userIdentity) ID() string       { return a.id }
func (a userIdentity) Username() string { return a.username }
func (a userIdentity) Email() string    { return a.email }
func (a userIdentity) Role() string     { return a.role }

var _ Identity = userIdentity{}

// Funko is a catalog figure. The store assigns the identifier.
type Funko struct {
	bun.BaseModel `bun:"table:funkos,alias:fnk"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Name          string     `bun:"name,notnull" json:"name"`
	Category      string     `bun:"category,notnull" json:"category"`
	CategoryID    uuid.UUID  `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	Price         float64    `bun:"price,notnull" json:"price"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Category groups catalog figures by name
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// AuthResponse pairs a fresh token with the public projection of the
// identity it was issued for
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// Filter narrows and pages catalog listings. Page is zero based.
type Filter struct {
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
	Page     int     `json:"page"`
	Size     int     `json:"size"`
}

// DefaultPageSize bounds unpaged listings
const DefaultPageSize = 10

// Normalize clamps paging values to sane defaults
func (f Filter) Normalize() Filter {
	if f.Size <= 0 {
		f.Size = DefaultPageSize
	}
	if f.Page < 0 {
		f.Page = 0
	}
	return f
}

// Page is one window of a catalog listing
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	Size       int `json:"size"`
}
