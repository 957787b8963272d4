package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups opinion fields. Categories form a forest: each one may hang
// under a parent, and nothing stops a chain of parents from looping back.
type Category struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             string     `gorm:"index;not null"`
	ParentCategoryID *uuid.UUID `gorm:"type:uuid;index"`
	ParentCategory   *Category  `gorm:"foreignKey:ParentCategoryID"`
	Fields           []Field    `gorm:"many2many:category_fields;"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCategory builds an unsaved category holding the given fields.
func NewCategory(name string, fields []Field) *Category {
	return &Category{
		ID:     uuid.New(),
		Name:   name,
		Fields: fields,
	}
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// SetParent links the category under parent. A nil parent makes it a root.
func (c *Category) SetParent(parent *Category) {
	if parent == nil {
		c.ParentCategoryID = nil
		c.ParentCategory = nil
		return
	}
	id := parent.ID
	c.ParentCategoryID = &id
	c.ParentCategory = parent
}

// IsChildOf reports whether the category's parent link points at parentID.
func (c *Category) IsChildOf(parentID uuid.UUID) bool {
	return c.ParentCategoryID != nil && *c.ParentCategoryID == parentID
}

func (c *Category) AddField(f Field) {
	c.Fields = append(c.Fields, f)
}

// RemoveField drops the field from the category's set and reports whether it was there.
func (c *Category) RemoveField(fieldID uuid.UUID) bool {
	for i, f := range c.Fields {
		if f.ID == fieldID {
			c.Fields = append(c.Fields[:i], c.Fields[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Category) HasField(fieldID uuid.UUID) bool {
	for _, f := range c.Fields {
		if f.ID == fieldID {
			return true
		}
	}
	return false
}
