package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"opinion-collector/internal/model"
)

// CategoryStore is the persistence contract the manager needs for categories.
// Lookups of missing rows must return gorm.ErrRecordNotFound.
type CategoryStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Save(ctx context.Context, category *model.Category) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// FieldStore is the persistence contract the manager needs for fields.
type FieldStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Field, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// FieldInput describes a field to attach to a category.
type FieldInput struct {
	Name string
	Type string
}

// CategoryInput represents data required to create a category.
type CategoryInput struct {
	Name             string
	ParentCategoryID *uuid.UUID
	Fields           []FieldInput
}

// UpdateCategoryInput carries the parent id as raw text; blank means "no parent".
type UpdateCategoryInput struct {
	Name             string
	ParentCategoryID string
}

// CategoryManager wraps category and field business logic.
type CategoryManager struct {
	categories CategoryStore
	fields     FieldStore
	log        *zap.Logger
}

func NewCategoryManager(categories CategoryStore, fields FieldStore, log *zap.Logger) *CategoryManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryManager{categories: categories, fields: fields, log: log.Named("categories")}
}

func (m *CategoryManager) CreateCategory(ctx context.Context, input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}

	fields := make([]model.Field, 0, len(input.Fields))
	for _, in := range input.Fields {
		field, err := model.NewField(in.Name, in.Type)
		if err != nil {
			return nil, err
		}
		fields = append(fields, *field)
	}
	category := model.NewCategory(name, fields)

	if input.ParentCategoryID != nil {
		parent, err := m.findCategory(ctx, *input.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		category.SetParent(parent)
	}

	if err := m.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	m.log.Info("category created",
		zap.Stringer("category_id", category.ID),
		zap.String("name", category.Name),
		zap.Int("fields", len(category.Fields)))
	return category, nil
}

func (m *CategoryManager) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return m.findCategory(ctx, id)
}

func (m *CategoryManager) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	return m.categories.FindAll(ctx)
}

// GetCategories returns the categories for which keep holds, in store order.
func (m *CategoryManager) GetCategories(ctx context.Context, keep func(model.Category) bool) ([]model.Category, error) {
	all, err := m.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Category, 0, len(all))
	for _, c := range all {
		if keep(c) {
			result = append(result, c)
		}
	}
	return result, nil
}

// GetSubcategories lists the direct children of parentID.
func (m *CategoryManager) GetSubcategories(ctx context.Context, parentID uuid.UUID) ([]model.Category, error) {
	if _, err := m.findCategory(ctx, parentID); err != nil {
		return nil, err
	}
	return m.GetCategories(ctx, func(c model.Category) bool {
		return c.IsChildOf(parentID)
	})
}

func (m *CategoryManager) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*model.Category, error) {
	category, err := m.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	rawParent := strings.TrimSpace(input.ParentCategoryID)
	if rawParent == "" {
		category.SetParent(nil)
	} else {
		parentID, err := uuid.Parse(rawParent)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed id %q", ErrParentCategoryNotFound, rawParent)
		}
		if category.ParentCategoryID == nil || *category.ParentCategoryID != parentID {
			parent, err := m.categories.FindByID(ctx, parentID)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return nil, fmt.Errorf("%w: %s", ErrParentCategoryNotFound, parentID)
			case err != nil:
				return nil, fmt.Errorf("find parent category: %w", err)
			}
			category.SetParent(parent)
		}
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != category.Name {
		category.Name = name
	}

	if err := m.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	m.log.Info("category updated", zap.Stringer("category_id", category.ID))
	return category, nil
}

func (m *CategoryManager) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := m.findCategory(ctx, id); err != nil {
		return err
	}
	if err := m.categories.DeleteByID(ctx, id); err != nil {
		return err
	}
	m.log.Info("category deleted", zap.Stringer("category_id", id))
	return nil
}

// AddField creates a field and attaches it to the category. An invalid field
// leaves the stored category untouched.
func (m *CategoryManager) AddField(ctx context.Context, categoryID uuid.UUID, input FieldInput) (*model.Category, error) {
	category, err := m.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	field, err := model.NewField(input.Name, input.Type)
	if err != nil {
		return nil, err
	}
	category.AddField(*field)

	if err := m.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	m.log.Info("field added",
		zap.Stringer("category_id", category.ID),
		zap.Stringer("field_id", field.ID),
		zap.String("type", string(field.Type)))
	return category, nil
}

// RemoveField detaches the field from every category that holds it, then deletes it.
func (m *CategoryManager) RemoveField(ctx context.Context, fieldID uuid.UUID) error {
	field, err := m.fields.FindByID(ctx, fieldID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	case err != nil:
		return fmt.Errorf("find field: %w", err)
	}

	for _, linked := range field.Categories {
		category, err := m.categories.FindByID(ctx, linked.ID)
		if err != nil {
			return fmt.Errorf("load category %s: %w", linked.ID, err)
		}
		category.RemoveField(field.ID)
		if err := m.categories.Save(ctx, category); err != nil {
			return err
		}
		m.log.Debug("field detached", zap.Stringer("category_id", category.ID), zap.Stringer("field_id", field.ID))
	}

	if err := m.fields.DeleteByID(ctx, fieldID); err != nil {
		return err
	}
	m.log.Info("field removed", zap.Stringer("field_id", fieldID), zap.Int("categories", len(field.Categories)))
	return nil
}

func (m *CategoryManager) findCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := m.categories.FindByID(ctx, id)
	switch {
	case err == nil:
		return category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}
