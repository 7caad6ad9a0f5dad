package funkos

import (
	"context"
	"fmt"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the bun backed user repository
type Users interface {
	UserStore

	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	UpdateTx(ctx context.Context, tx bun.IDB, id uuid.UUID, record *User) (*User, error)
}

type users struct {
	repo repository.Repository[*User]
	db   *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository builds the default UserStore over bun
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &users{repo: repo, db: db}
}

// FindByUsername returns nil, not an error, when no record matches
func (a *users) FindByUsername(ctx context.Context, username string) (*User, error) {
	return a.findByColumn(ctx, "username", username)
}

// FindByEmail returns nil, not an error, when no record matches
func (a *users) FindByEmail(ctx context.Context, email string) (*User, error) {
	return a.findByColumn(ctx, "email", email)
}

func (a *users) findByColumn(ctx context.Context, column, value string) (*User, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where(fmt.Sprintf("?TableAlias.%s = ?", column), value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	prepareUserDefaults(record)
	return a.repo.CreateTx(ctx, tx, record)
}

func (a *users) Update(ctx context.Context, id uuid.UUID, record *User) (*User, error) {
	return a.UpdateTx(ctx, a.db, id, record)
}

func (a *users) UpdateTx(ctx context.Context, tx bun.IDB, id uuid.UUID, record *User) (*User, error) {
	record.ID = id
	updated, err := a.repo.UpdateTx(ctx, tx, record, repository.UpdateByID(id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the record, returning its last snapshot, or nil when
// nothing matched
func (a *users) Delete(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if _, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

func (a *users) List(ctx context.Context) ([]*User, error) {
	var records []*User
	err := a.db.NewSelect().
		Model(&records).
		Order("username ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleUser
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
