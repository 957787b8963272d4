package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"opinion-collector/internal/model"
)

// FieldRepository handles field definitions. Fields are created through the
// categories they are attached to.
type FieldRepository struct {
	db *gorm.DB
}

func NewFieldRepository(db *gorm.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

// FindByID loads a field together with every category it is attached to.
func (r *FieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Field, error) {
	var field model.Field
	if err := r.db.WithContext(ctx).Preload("Categories").First(&field, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// DeleteByID removes the field row and any link rows still pointing at it.
func (r *FieldRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		field := model.Field{ID: id}
		if err := tx.Model(&field).Association("Categories").Clear(); err != nil {
			return fmt.Errorf("unlink field: %w", err)
		}
		if err := tx.Delete(&model.Field{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete field: %w", err)
		}
		return nil
	})
}
