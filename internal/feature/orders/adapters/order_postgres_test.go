package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"natal_backend/internal/feature/orders/domain/entity"
	"natal_backend/internal/feature/orders/usecase"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースをセットアップします。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open database")

	err = db.AutoMigrate(&entity.Order{})
	require.NoError(t, err, "failed to migrate database")

	return db
}

func testOrder(id string) *entity.Order {
	return &entity.Order{
		ID:            id,
		Plan:          "premium",
		CustomerEmail: "ada@example.com",
		CustomerName:  "Ada",
	}
}

func TestOrderPostgres_Create(t *testing.T) {
	t.Run("successful order creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOrderRepository(db)

		order := testOrder("order-1")
		err := repo.Create(context.Background(), order)

		assert.NoError(t, err, "failed to create order")
		assert.False(t, order.CreatedAt.IsZero(), "CreatedAt is not set")
	})
}

func TestOrderPostgres_FindByID(t *testing.T) {
	t.Run("find order successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOrderRepository(db)

		want := testOrder("order-2")
		require.NoError(t, repo.Create(context.Background(), want))

		got, err := repo.FindByID(context.Background(), "order-2")

		assert.NoError(t, err, "failed to find order")
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Plan, got.Plan)
		assert.Equal(t, want.CustomerEmail, got.CustomerEmail)
		assert.Equal(t, want.CustomerName, got.CustomerName)
	})

	t.Run("order not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOrderRepository(db)

		_, err := repo.FindByID(context.Background(), "no-such-order")

		assert.ErrorIs(t, err, usecase.ErrOrderNotFound)
	})
}

func TestOrderPostgres_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	require.NoError(t, repo.Create(context.Background(), testOrder("order-3")))

	t.Run("existing order", func(t *testing.T) {
		ok, err := repo.Exists(context.Background(), "order-3")

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing order", func(t *testing.T) {
		ok, err := repo.Exists(context.Background(), "order-404")

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
