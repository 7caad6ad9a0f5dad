package funkos

import (
	"context"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// CategoryPayload carries the attributes for creating or renaming a
// category
type CategoryPayload struct {
	Name string `json:"name"`
}

// Validate applies the structural rules for a category payload
func (r CategoryPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

// CategoryService exposes category operations with the same cache-aside
// read path the figure service uses
type CategoryService struct {
	repo   CategoryStore
	cache  CacheStore
	logger Logger
}

// NewCategoryService wires the category service
func NewCategoryService(repo CategoryStore, cache CacheStore) *CategoryService {
	return &CategoryService{
		repo:   repo,
		cache:  cache,
		logger: defLogger{},
	}
}

func (s *CategoryService) WithLogger(logger Logger) *CategoryService {
	s.logger = logger
	return s
}

// GetByID serves the category from cache when possible, populating the
// cache on a store hit
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	key := cacheKey(categoryCachePrefix, id)

	if cached, hit, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache read failed, falling back to store", "key", key, "error", err)
	} else if hit {
		category := &Category{}
		if err := json.Unmarshal(cached, category); err == nil {
			s.logger.Debug("category served from cache", "id", id)
			return category, nil
		}
		s.logger.Warn("discarding undecodable cache entry", "key", key)
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load category")
	}
	if category == nil {
		return nil, goerrors.New("category not found", goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"id": id.String()})
	}

	if snapshot, err := json.Marshal(category); err == nil {
		if err := s.cache.Set(ctx, key, snapshot, DefaultCacheTTL); err != nil {
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return category, nil
}

// GetAll lists every category; listings are never cached
func (s *CategoryService) GetAll(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list categories")
	}
	return categories, nil
}

// Create rejects names already in use
func (s *CategoryService) Create(ctx context.Context, payload CategoryPayload) (*Category, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid category payload")
	}

	existing, err := s.repo.GetByName(ctx, payload.Name)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check category name")
	}
	if existing != nil {
		return nil, goerrors.New("category already exists", goerrors.CategoryConflict).
			WithMetadata(map[string]any{"name": payload.Name})
	}

	created, err := s.repo.Create(ctx, &Category{Name: payload.Name})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create category")
	}

	return created, nil
}

// Update renames a category. A name held by a different category is a
// conflict; renaming a category to its own name is allowed.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, payload CategoryPayload) (*Category, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid category payload")
	}

	existing, err := s.repo.GetByName(ctx, payload.Name)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check category name")
	}
	if existing != nil && existing.ID != id {
		return nil, goerrors.New("another category already uses that name", goerrors.CategoryConflict).
			WithMetadata(map[string]any{"name": payload.Name})
	}

	updated, err := s.repo.Update(ctx, id, &Category{ID: id, Name: payload.Name})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update category")
	}
	if updated == nil {
		return nil, goerrors.New("category not found", goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"id": id.String()})
	}

	s.invalidate(ctx, id)

	return updated, nil
}

// Delete removes a category, returning its last snapshot, and drops the
// cache entry
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (*Category, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete category")
	}
	if deleted == nil {
		return nil, goerrors.New("category not found", goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"id": id.String()})
	}

	s.invalidate(ctx, id)

	return deleted, nil
}

func (s *CategoryService) invalidate(ctx context.Context, id uuid.UUID) {
	key := cacheKey(categoryCachePrefix, id)
	if err := s.cache.Remove(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
