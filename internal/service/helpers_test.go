package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"opinion-collector/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestManager(t *testing.T) (*CategoryManager, *repository.CategoryRepository, *repository.FieldRepository) {
	t.Helper()
	db := newTestDB(t)
	categories := repository.NewCategoryRepository(db)
	fields := repository.NewFieldRepository(db)
	return NewCategoryManager(categories, fields, zap.NewNop()), categories, fields
}
