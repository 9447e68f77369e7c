package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmatrack/internal/repository"
)

func newSQLStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "farmatrack.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := repository.NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestSQLStock_SeedAndAdjust(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	s := NewMrStockService(store.Stock, store.Tx)

	seeded, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
	seeded, err = s.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "P001", list[0].ID)
	assert.Equal(t, "Product X (500mg)", list[0].Name)

	item, err := s.AdjustStock(ctx, "P001", -50)
	require.NoError(t, err)
	assert.Equal(t, 50, item.Stock)

	_, err = s.AdjustStock(ctx, "P001", -60)
	require.ErrorIs(t, err, ErrNotEnoughStock)
	assert.Equal(t, "Insufficient stock for product P001", err.Error())

	item, err = s.Get(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 50, item.Stock)

	_, err = s.AdjustStock(ctx, "P404", -1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStock_ConcurrentAdjust(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	s := NewMrStockService(store.Stock, store.Tx)
	_, err := s.Seed(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.AdjustStock(ctx, "P002", -5)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	item, err := s.Get(ctx, "P002")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Stock)
}

func TestSQLUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	users := NewUserService(store.Users)

	_, err := users.Create(ctx, UserInput{Name: "A", Email: "a@X.io", Password: "secret1"})
	require.NoError(t, err)
	_, err = users.Create(ctx, UserInput{Name: "B", Email: "A@x.IO", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Email already exists", err.Error())

	u, err := users.Authenticate(ctx, "A@X.IO", "secret1")
	require.NoError(t, err)
	assert.NotNil(t, u.LastLogin)
}

func TestSQLTasks_UpdateMissing(t *testing.T) {
	store := newSQLStore(t)
	tasks := NewTaskService(store.Tasks)
	_, err := tasks.Update(context.Background(), 7, TaskInput{Title: "x"})
	require.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Task not found", err.Error())
}
