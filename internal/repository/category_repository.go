package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"opinion-collector/internal/model"
)

// CategoryRepository manages opinion categories and their field links.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindByID loads a category with its parent and fields. A missing row yields gorm.ErrRecordNotFound.
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Preload("ParentCategory").
		Preload("Fields").
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Preload("ParentCategory").
		Preload("Fields").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Save upserts the category row and makes the stored field set match category.Fields.
// New fields in the set are inserted; the parent row is never written.
func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(category).Error; err != nil {
			return fmt.Errorf("save category: %w", err)
		}

		fields := tx.Model(category).Association("Fields")
		if len(category.Fields) == 0 {
			if err := fields.Clear(); err != nil {
				return fmt.Errorf("clear category fields: %w", err)
			}
			return nil
		}
		if err := fields.Replace(category.Fields); err != nil {
			return fmt.Errorf("replace category fields: %w", err)
		}
		return nil
	})
}

// DeleteByID drops the category, its field links and the parent link of its children.
func (r *CategoryRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category := model.Category{ID: id}
		if err := tx.Model(&category).Association("Fields").Clear(); err != nil {
			return fmt.Errorf("unlink category fields: %w", err)
		}
		if err := tx.Model(&model.Category{}).
			Where("parent_category_id = ?", id).
			Update("parent_category_id", nil).Error; err != nil {
			return fmt.Errorf("detach child categories: %w", err)
		}
		if err := tx.Delete(&model.Category{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
