package funkos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Funkos is the bun backed figure repository. The autoincrement int64
// primary key keeps this on plain bun queries; the uuid keyed
// repositories go through go-repository-bun.
type Funkos interface {
	FunkoStore
}

type funkos struct {
	db *bun.DB
}

var _ Funkos = (*funkos)(nil)

// NewFunkosRepository builds the default FunkoStore over bun
func NewFunkosRepository(db *bun.DB) Funkos {
	return &funkos{db: db}
}

func (a *funkos) GetByID(ctx context.Context, id int64) (*Funko, error) {
	record := &Funko{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

// GetAll applies the optional filters, counts the full match set, and
// returns one page ordered by id
func (a *funkos) GetAll(ctx context.Context, filter Filter) ([]*Funko, int, error) {
	filter = filter.Normalize()

	var records []*Funko
	q := a.db.NewSelect().Model(&records)

	if filter.Name != "" {
		q = q.Where("?TableAlias.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("?TableAlias.category = ?", filter.Category)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("?TableAlias.price <= ?", filter.MaxPrice)
	}

	total, err := q.
		Order("id ASC").
		Limit(filter.Size).
		Offset(filter.Page * filter.Size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (a *funkos) Create(ctx context.Context, record *Funko) (*Funko, error) {
	if _, err := a.db.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// Update replaces the mutable columns, refreshing updated_at, and
// returns nil when the id does not exist
func (a *funkos) Update(ctx context.Context, id int64, record *Funko) (*Funko, error) {
	found, err := a.GetByID(ctx, id)
	if err != nil || found == nil {
		return nil, err
	}

	now := time.Now()
	found.Name = record.Name
	found.Category = record.Category
	found.CategoryID = record.CategoryID
	found.Price = record.Price
	found.UpdatedAt = &now

	if _, err := a.db.NewUpdate().
		Model(found).
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}

	return found, nil
}

// Delete removes the record, returning its last snapshot, or nil when
// nothing matched
func (a *funkos) Delete(ctx context.Context, id int64) (*Funko, error) {
	found, err := a.GetByID(ctx, id)
	if err != nil || found == nil {
		return nil, err
	}

	if _, err := a.db.NewDelete().
		Model((*Funko)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx); err != nil {
		return nil, err
	}

	return found, nil
}
