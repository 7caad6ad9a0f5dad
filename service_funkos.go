package funkos

import (
	"context"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// FunkoPayload carries the attributes for creating or replacing a figure.
// Category references an existing category by name.
type FunkoPayload struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Validate applies the structural rules for a figure payload
func (r FunkoPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Required),
		validation.Field(&r.Price, validation.Min(0.0)),
	)
}

// FunkoPatch carries a partial update; nil fields are left untouched
type FunkoPatch struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// FunkoService exposes catalog figure operations with a cache-aside read
// path: reads check the cache first and populate it on a store hit, writes
// invalidate the entry for the touched id. A read racing a write can still
// observe a snapshot up to DefaultCacheTTL old; the catalog tolerates that.
type FunkoService struct {
	repo       FunkoStore
	categories CategoryStore
	cache      CacheStore
	notifier   Notifier
	outbox     *Outbox
	adminEmail string
	logger     Logger
}

// NewFunkoService wires the figure service. The cache is best effort: a
// backend that always misses only degrades reads to the store.
func NewFunkoService(repo FunkoStore, categories CategoryStore, cache CacheStore) *FunkoService {
	return &FunkoService{
		repo:       repo,
		categories: categories,
		cache:      cache,
		notifier:   noopNotifier{},
		logger:     defLogger{},
	}
}

func (s *FunkoService) WithLogger(logger Logger) *FunkoService {
	s.logger = logger
	return s
}

// WithNotifier configures the admin notification sink
func (s *FunkoService) WithNotifier(notifier Notifier) *FunkoService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	s.notifier = notifier
	return s
}

// WithOutbox configures background email dispatch for catalog additions
func (s *FunkoService) WithOutbox(outbox *Outbox, adminEmail string) *FunkoService {
	s.outbox = outbox
	s.adminEmail = adminEmail
	return s
}

// GetByID serves the figure from cache when possible. On a miss the store
// is consulted once and a hit repopulates the cache with DefaultCacheTTL.
func (s *FunkoService) GetByID(ctx context.Context, id int64) (*Funko, error) {
	key := cacheKey(funkoCachePrefix, id)

	if cached, hit, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache read failed, falling back to store", "key", key, "error", err)
	} else if hit {
		funko := &Funko{}
		if err := json.Unmarshal(cached, funko); err == nil {
			s.logger.Debug("funko served from cache", "id", id)
			return funko, nil
		}
		s.logger.Warn("discarding undecodable cache entry", "key", key)
	}

	funko, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load funko")
	}
	if funko == nil {
		return nil, goerrors.New("funko not found", goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"id": id})
	}

	if snapshot, err := json.Marshal(funko); err == nil {
		if err := s.cache.Set(ctx, key, snapshot, DefaultCacheTTL); err != nil {
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return funko, nil
}

// GetAll lists figures through the store; listings are never cached
func (s *FunkoService) GetAll(ctx context.Context, filter Filter) (*Page[*Funko], error) {
	filter = filter.Normalize()
	s.logger.Debug("listing funkos", "page", filter.Page, "size", filter.Size)

	items, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list funkos")
	}

	return &Page[*Funko]{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		Size:       filter.Size,
	}, nil
}

// Save creates a figure after resolving its category by name. A missing
// category is a validation failure, not a conflict.
func (s *FunkoService) Save(ctx context.Context, payload FunkoPayload) (*Funko, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid funko payload")
	}

	category, err := s.resolveCategory(ctx, payload.Category)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Funko{
		Name:       payload.Name,
		Category:   category.Name,
		CategoryID: category.ID,
		Price:      payload.Price,
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create funko")
	}

	s.notify(ctx, EventFunkoCreated, created)
	s.enqueueAdminEmail(created)

	return created, nil
}

// Update replaces a figure wholesale and drops its cached snapshot
func (s *FunkoService) Update(ctx context.Context, id int64, payload FunkoPayload) (*Funko, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid funko payload")
	}

	category, err := s.resolveCategory(ctx, payload.Category)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, &Funko{
		ID:         id,
		Name:       payload.Name,
		Category:   category.Name,
		CategoryID: category.ID,
		Price:      payload.Price,
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update funko")
	}
	if updated == nil {
		return nil, goerrors.New("funko not found", goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"id": id})
	}

	s.invalidate(ctx, id)
	s.notify(ctx, EventFunkoUpdated, updated)

	return updated, nil
}

// Patch applies a partial update. Changing the category to one that does
// not exist is a conflict; the figure keeps referencing a live category.
func (s *FunkoService) Patch(ctx context.Context, id int64, patch FunkoPatch) (*Funko, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load funko")
	}
	if found == nil {
		return nil, goerrors.New("funko not found", goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"id": id})
	}

	if patch.Name != nil {
		found.Name = *patch.Name
	}
	if patch.Price != nil {
		found.Price = *patch.Price
	}
	if patch.Category != nil {
		category, err := s.categories.GetByName(ctx, *patch.Category)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve category")
		}
		if category == nil {
			return nil, goerrors.New("category does not exist", goerrors.CategoryConflict).
				WithMetadata(map[string]any{"category": *patch.Category})
		}
		found.Category = category.Name
		found.CategoryID = category.ID
	}

	updated, err := s.repo.Update(ctx, id, found)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to patch funko")
	}

	s.invalidate(ctx, id)
	s.notify(ctx, EventFunkoPatched, updated)

	return updated, nil
}

// Delete removes a figure, returning its last snapshot, and drops the
// cache entry so later reads cannot resurrect it
func (s *FunkoService) Delete(ctx context.Context, id int64) (*Funko, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete funko")
	}
	if deleted == nil {
		return nil, goerrors.New("funko not found", goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"id": id})
	}

	s.invalidate(ctx, id)
	s.notify(ctx, EventFunkoDeleted, deleted)

	return deleted, nil
}

func (s *FunkoService) resolveCategory(ctx context.Context, name string) (*Category, error) {
	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve category")
	}
	if category == nil {
		return nil, goerrors.New("category is not valid", goerrors.CategoryValidation).
			WithMetadata(map[string]any{"category": name})
	}
	return category, nil
}

func (s *FunkoService) invalidate(ctx context.Context, id int64) {
	key := cacheKey(funkoCachePrefix, id)
	if err := s.cache.Remove(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", "key", key, "error", err)
	}
}

func (s *FunkoService) notify(ctx context.Context, eventType EventType, funko *Funko) {
	event := Event{Type: eventType, Funko: funko}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("notification failed", "event", eventType, "error", err)
	}
}

func (s *FunkoService) enqueueAdminEmail(funko *Funko) {
	if s.outbox == nil || s.adminEmail == "" {
		return
	}

	msg := NewFunkoCreatedEmail(s.adminEmail, funko)
	if !s.outbox.Enqueue(msg) {
		s.logger.Warn("email outbox full, dropping notification", "funko", funko.ID)
		return
	}
	s.logger.Debug("admin email enqueued", "funko", funko.ID)
}
