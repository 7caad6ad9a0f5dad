package funkos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger is a levelled logger; args are alternating key value pairs
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	SignUp(ctx context.Context, payload SignUpPayload) (*AuthResponse, error)
	SignIn(ctx context.Context, identifier, password string) (*AuthResponse, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	GetTokenExpiration() int
	GetAdminEmail() string
}

// UserStore is the store we need to persist and retrieve identities.
// Lookups return a nil record, not an error, when nothing matches.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	Update(ctx context.Context, id uuid.UUID, record *User) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// FunkoStore persists catalog figures
type FunkoStore interface {
	GetByID(ctx context.Context, id int64) (*Funko, error)
	GetAll(ctx context.Context, filter Filter) ([]*Funko, int, error)
	Create(ctx context.Context, record *Funko) (*Funko, error)
	Update(ctx context.Context, id int64, record *Funko) (*Funko, error)
	Delete(ctx context.Context, id int64) (*Funko, error)
}

// CategoryStore persists catalog categories
type CategoryStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, record *Category) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, record *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*Category, error)
}

// CacheStore is a best-effort key value cache. A backend that always
// misses is a valid implementation; callers degrade to store reads.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// Notifier receives catalog change events destined for admin consumers
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Sender delivers a single email message over some transport
type Sender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { d.print("[ERR]", msg, args) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("[WRN]", msg, args) }
func (d defLogger) Info(msg string, args ...any)  { d.print("[INF]", msg, args) }
func (d defLogger) Debug(msg string, args ...any) { d.print("[DBG]", msg, args) }

func (d defLogger) print(level, msg string, args []any) {
	var sb strings.Builder
	sb.WriteString(level)
	sb.WriteString(" FUNKOS ")
	sb.WriteString(msg)

	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 != 0 {
		fmt.Fprintf(&sb, " %v", args[len(args)-1])
	}

	fmt.Println(sb.String())
}
