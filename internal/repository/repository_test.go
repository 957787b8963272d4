package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"opinion-collector/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "data", "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mustField(t *testing.T, name, typ string) model.Field {
	t.Helper()
	f, err := model.NewField(name, typ)
	require.NoError(t, err)
	return *f
}

func TestCategorySaveReplacesFieldSet(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))

	color, size := mustField(t, "Color", "text"), mustField(t, "Size", "number")
	category := model.NewCategory("Shirts", []model.Field{color, size})
	require.NoError(t, repo.Save(ctx, category))

	stored, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, stored.Fields, 2)
	assert.False(t, stored.CreatedAt.IsZero())

	stored.RemoveField(color.ID)
	stored.Name = "T-Shirts"
	require.NoError(t, repo.Save(ctx, stored))

	again, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirts", again.Name)
	require.Len(t, again.Fields, 1)
	assert.Equal(t, size.ID, again.Fields[0].ID)

	again.Fields = nil
	require.NoError(t, repo.Save(ctx, again))
	empty, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Fields)
}

func TestCategoryFindMissing(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryDeleteDetachesChildrenAndFields(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	fields := NewFieldRepository(db)

	shared := mustField(t, "Brand", "text")
	parent := model.NewCategory("Audio", []model.Field{shared})
	require.NoError(t, categories.Save(ctx, parent))

	child := model.NewCategory("Headphones", []model.Field{shared})
	child.SetParent(parent)
	require.NoError(t, categories.Save(ctx, child))

	require.NoError(t, categories.DeleteByID(ctx, parent.ID))

	_, err := categories.FindByID(ctx, parent.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	orphan, err := categories.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentCategoryID)
	assert.Len(t, orphan.Fields, 1)

	field, err := fields.FindByID(ctx, shared.ID)
	require.NoError(t, err)
	require.Len(t, field.Categories, 1)
	assert.Equal(t, child.ID, field.Categories[0].ID)
}

func TestCategoryFindAllOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))

	for _, name := range []string{"Zoo", "Apple", "Mango"} {
		require.NoError(t, repo.Save(ctx, model.NewCategory(name, nil)))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Apple", all[0].Name)
	assert.Equal(t, "Mango", all[1].Name)
	assert.Equal(t, "Zoo", all[2].Name)
}

func TestFieldDeleteByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	fields := NewFieldRepository(db)

	f := mustField(t, "Weight", "number")
	category := model.NewCategory("Parcels", []model.Field{f})
	require.NoError(t, categories.Save(ctx, category))

	require.NoError(t, fields.DeleteByID(ctx, f.ID))

	_, err := fields.FindByID(ctx, f.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	stored, err := categories.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Fields)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(newTestDB(t))
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &model.Token{Token: "late", UserID: uuid.New(), ExpiresAt: now.Add(2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.Token{Token: "early", UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)}))
	assert.Error(t, repo.Create(ctx, &model.Token{Token: "early", ExpiresAt: now}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "early", all[0].Token)

	require.NoError(t, repo.DeleteByToken(ctx, "early"))
	require.NoError(t, repo.DeleteByToken(ctx, "unknown"))

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "late", all[0].Token)
}

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(newTestDB(t))

	question := uuid.New()
	require.NoError(t, repo.Append(ctx, model.NewQuestionReportEvent(uuid.New(), question, "first")))
	require.NoError(t, repo.Append(ctx, model.NewQuestionReportEvent(uuid.New(), uuid.New(), "other question")))
	require.NoError(t, repo.Append(ctx, model.NewEvent(uuid.New(), "generic")))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	reports, err := repo.FindByQuestion(ctx, question)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "first", reports[0].Description)
	require.NotNil(t, reports[0].QuestionID)
	assert.Equal(t, question, *reports[0].QuestionID)
}

func TestEnsureDirForSQLite(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, ensureDirForSQLite(":memory:"))
	require.NoError(t, ensureDirForSQLite("file::memory:?cache=shared"))
	require.NoError(t, ensureDirForSQLite("plain.db"))
	require.NoError(t, ensureDirForSQLite("file:"+filepath.Join(dir, "a", "b.db")+"?_busy_timeout=5000"))
	assert.DirExists(t, filepath.Join(dir, "a"))
}
