package funkos_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	funkos "github.com/goliatone/go-funkos"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements funkos.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*funkos.User, error) {
	args := m.Called(ctx, username)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*funkos.User, error) {
	args := m.Called(ctx, email)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, record *funkos.User) (*funkos.User, error) {
	args := m.Called(ctx, record)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, id uuid.UUID, record *funkos.User) (*funkos.User, error) {
	args := m.Called(ctx, id, record)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) (*funkos.User, error) {
	args := m.Called(ctx, id)
	return userArg(args.Get(0)), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]*funkos.User, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*funkos.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func userArg(v any) *funkos.User {
	if v == nil {
		return nil
	}
	return v.(*funkos.User)
}

// MockFunkoStore implements funkos.FunkoStore
type MockFunkoStore struct {
	mock.Mock
}

func (m *MockFunkoStore) GetByID(ctx context.Context, id int64) (*funkos.Funko, error) {
	args := m.Called(ctx, id)
	return funkoArg(args.Get(0)), args.Error(1)
}

func (m *MockFunkoStore) GetAll(ctx context.Context, filter funkos.Filter) ([]*funkos.Funko, int, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*funkos.Funko), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockFunkoStore) Create(ctx context.Context, record *funkos.Funko) (*funkos.Funko, error) {
	args := m.Called(ctx, record)
	return funkoArg(args.Get(0)), args.Error(1)
}

func (m *MockFunkoStore) Update(ctx context.Context, id int64, record *funkos.Funko) (*funkos.Funko, error) {
	args := m.Called(ctx, id, record)
	return funkoArg(args.Get(0)), args.Error(1)
}

func (m *MockFunkoStore) Delete(ctx context.Context, id int64) (*funkos.Funko, error) {
	args := m.Called(ctx, id)
	return funkoArg(args.Get(0)), args.Error(1)
}

func funkoArg(v any) *funkos.Funko {
	if v == nil {
		return nil
	}
	return v.(*funkos.Funko)
}

// MockCategoryStore implements funkos.CategoryStore
type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*funkos.Category, error) {
	args := m.Called(ctx, id)
	return categoryArg(args.Get(0)), args.Error(1)
}

func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*funkos.Category, error) {
	args := m.Called(ctx, name)
	return categoryArg(args.Get(0)), args.Error(1)
}

func (m *MockCategoryStore) GetAll(ctx context.Context) ([]*funkos.Category, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*funkos.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryStore) Create(ctx context.Context, record *funkos.Category) (*funkos.Category, error) {
	args := m.Called(ctx, record)
	return categoryArg(args.Get(0)), args.Error(1)
}

func (m *MockCategoryStore) Update(ctx context.Context, id uuid.UUID, record *funkos.Category) (*funkos.Category, error) {
	args := m.Called(ctx, id, record)
	return categoryArg(args.Get(0)), args.Error(1)
}

func (m *MockCategoryStore) Delete(ctx context.Context, id uuid.UUID) (*funkos.Category, error) {
	args := m.Called(ctx, id)
	return categoryArg(args.Get(0)), args.Error(1)
}

func categoryArg(v any) *funkos.Category {
	if v == nil {
		return nil
	}
	return v.(*funkos.Category)
}

// CountingCache is an in-memory CacheStore that records call counts so
// tests can assert on the cache-aside interaction pattern
type CountingCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	Gets    int
	Sets    int
	Removes int
}

func NewCountingCache() *CountingCache {
	return &CountingCache{entries: make(map[string][]byte)}
}

func (c *CountingCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	value, ok := c.entries[key]
	return value, ok, nil
}

func (c *CountingCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	c.entries[key] = value
	return nil
}

func (c *CountingCache) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Removes++
	delete(c.entries, key)
	return nil
}

func (c *CountingCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

var assertableErr = errors.New("cache backend unavailable")

// FailingCache always errors, modelling an unavailable backend
type FailingCache struct{}

func (FailingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, assertableErr
}

func (FailingCache) Set(context.Context, string, []byte, time.Duration) error {
	return assertableErr
}

func (FailingCache) Remove(context.Context, string) error {
	return assertableErr
}

// MockNotifier implements funkos.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event funkos.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSender implements funkos.Sender
type MockSender struct {
	mu   sync.Mutex
	sent []funkos.EmailMessage
	errs []error
}

func (m *MockSender) Send(_ context.Context, msg funkos.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return err
	}
	return nil
}

func (m *MockSender) Sent() []funkos.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]funkos.EmailMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %T: %v", v, err)
	}
	return string(raw)
}

func newTestConfig() *funkos.Settings {
	return &funkos.Settings{
		SigningKey:      "test-signing-key-with-enough-entropy-0123456789",
		Issuer:          "test-issuer",
		Audience:        []string{"test-audience"},
		TokenExpiration: 60,
	}
}
