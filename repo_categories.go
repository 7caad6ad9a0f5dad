package funkos

import (
	"context"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Categories is the bun backed category repository
type Categories interface {
	CategoryStore
}

type categories struct {
	repo repository.Repository[*Category]
	db   *bun.DB
}

var _ Categories = (*categories)(nil)

// NewCategoriesRepository builds the default CategoryStore over bun
func NewCategoriesRepository(db *bun.DB) Categories {
	repo := repository.NewRepository[*Category](db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "name"
		},
	})

	return &categories{repo: repo, db: db}
}

func (a *categories) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	record := &Category{}
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

	return record, nil
}

func (a *categories) GetByName(ctx context.Context, name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	record := &Category{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
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

func (a *categories) GetAll(ctx context.Context) ([]*Category, error) {
	var records []*Category
	err := a.db.NewSelect().
		Model(&records).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *categories) Create(ctx context.Context, record *Category) (*Category, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.repo.CreateTx(ctx, a.db, record)
}

func (a *categories) Update(ctx context.Context, id uuid.UUID, record *Category) (*Category, error) {
	record.ID = id
	updated, err := a.repo.UpdateTx(ctx, a.db, record, repository.UpdateByID(id.String()))
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
func (a *categories) Delete(ctx context.Context, id uuid.UUID) (*Category, error) {
	record, err := a.GetByID(ctx, id)
	if err != nil || record == nil {
		return nil, err
	}

	if _, err := a.db.NewDelete().
		Model((*Category)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
