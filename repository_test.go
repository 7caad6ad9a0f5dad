package funkos_test

import (
	"context"
	"testing"

	funkos "github.com/goliatone/go-funkos"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) funkos.RepositoryManager {
	t.Helper()

	db, err := funkos.OpenSQLite(":memory:")
	require.NoError(t, err)
	// in-memory sqlite exists per connection, keep the pool at one
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, funkos.CreateSchema(context.Background(), db))

	manager := funkos.NewRepositoryManager(db)
	require.NoError(t, manager.Validate())

	return manager
}

func TestUsersRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestManager(t).Users()

	t.Run("create assigns id and default role", func(t *testing.T) {
		created, err := repo.Create(ctx, &funkos.User{
			Username:     "pepe",
			Email:        "pepe@example.com",
			PasswordHash: "hash",
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, funkos.RoleUser, created.Role)
	})

	t.Run("find by username and email", func(t *testing.T) {
		byName, err := repo.FindByUsername(ctx, "pepe")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, "pepe@example.com", byName.Email)

		byEmail, err := repo.FindByEmail(ctx, "pepe@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, byName.ID, byEmail.ID)
	})

	t.Run("missing record is nil, not an error", func(t *testing.T) {
		missing, err := repo.FindByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)

		missing, err = repo.FindByUsername(ctx, "  ")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "pepe")
		require.NoError(t, err)
		require.NotNil(t, found)

		found.Role = funkos.RoleAdmin
		updated, err := repo.Update(ctx, found.ID, found)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, funkos.RoleAdmin, updated.Role)
	})

	t.Run("delete returns the snapshot", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "pepe")
		require.NoError(t, err)
		require.NotNil(t, found)

		deleted, err := repo.Delete(ctx, found.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "pepe", deleted.Username)

		gone, err := repo.FindByUsername(ctx, "pepe")
		require.NoError(t, err)
		assert.Nil(t, gone)

		again, err := repo.Delete(ctx, found.ID)
		require.NoError(t, err)
		assert.Nil(t, again)
	})
}

func TestCategoriesRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestManager(t).Categories()

	created, err := repo.Create(ctx, &funkos.Category{Name: "DC"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	t.Run("get by name", func(t *testing.T) {
		found, err := repo.GetByName(ctx, "DC")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)

		missing, err := repo.GetByName(ctx, "Marvel")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("get all ordered by name", func(t *testing.T) {
		_, err := repo.Create(ctx, &funkos.Category{Name: "Anime"})
		require.NoError(t, err)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Anime", all[0].Name)
		assert.Equal(t, "DC", all[1].Name)
	})

	t.Run("update missing is nil", func(t *testing.T) {
		updated, err := repo.Update(ctx, uuid.New(), &funkos.Category{Name: "Ghost"})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("delete returns the snapshot", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "DC", deleted.Name)

		gone, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestFunkosRepository(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)
	repo := manager.Funkos()

	category, err := manager.Categories().Create(ctx, &funkos.Category{Name: "DC"})
	require.NoError(t, err)

	seed := []struct {
		name  string
		price float64
	}{
		{"Batman", 19.99},
		{"Batgirl", 14.99},
		{"Superman", 24.99},
	}

	for _, s := range seed {
		created, err := repo.Create(ctx, &funkos.Funko{
			Name:       s.name,
			Category:   category.Name,
			CategoryID: category.ID,
			Price:      s.price,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID, "sqlite assigns the autoincrement id")
	}

	t.Run("get by id", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Batman", found.Name)

		missing, err := repo.GetByID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("get all with name filter", func(t *testing.T) {
		records, total, err := repo.GetAll(ctx, funkos.Filter{Name: "bat"})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, records, 2)
		assert.Equal(t, "Batman", records[0].Name)
	})

	t.Run("get all with max price filter", func(t *testing.T) {
		records, total, err := repo.GetAll(ctx, funkos.Filter{MaxPrice: 15})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, records, 1)
		assert.Equal(t, "Batgirl", records[0].Name)
	})

	t.Run("get all paginates", func(t *testing.T) {
		first, total, err := repo.GetAll(ctx, funkos.Filter{Size: 2, Page: 0})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, first, 2)

		second, _, err := repo.GetAll(ctx, funkos.Filter{Size: 2, Page: 1})
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, "Superman", second[0].Name)
	})

	t.Run("update replaces fields and stamps updated_at", func(t *testing.T) {
		updated, err := repo.Update(ctx, 1, &funkos.Funko{
			Name:       "Batman (Rebirth)",
			Category:   category.Name,
			CategoryID: category.ID,
			Price:      29.99,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Batman (Rebirth)", updated.Name)
		assert.Equal(t, 29.99, updated.Price)
		assert.NotNil(t, updated.UpdatedAt)

		missing, err := repo.Update(ctx, 404, &funkos.Funko{Name: "x"})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("delete returns the snapshot", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "Batman (Rebirth)", deleted.Name)

		gone, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
