package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUnsupportedType = errors.New("unsupported field type")
	ErrInvalidField    = errors.New("invalid field")
)

// FieldType is the kind of answer a field collects.
type FieldType string

const (
	FieldTypeText    FieldType = "TEXT"
	FieldTypeNumber  FieldType = "NUMBER"
	FieldTypeBoolean FieldType = "BOOLEAN"
	FieldTypeDate    FieldType = "DATE"
	FieldTypeChoice  FieldType = "CHOICE"
)

var supportedFieldTypes = map[FieldType]struct{}{
	FieldTypeText:    {},
	FieldTypeNumber:  {},
	FieldTypeBoolean: {},
	FieldTypeDate:    {},
	FieldTypeChoice:  {},
}

// ParseFieldType accepts any casing of a supported type name.
func ParseFieldType(raw string) (FieldType, error) {
	t := FieldType(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := supportedFieldTypes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, raw)
	}
	return t, nil
}

// Field is a typed attribute definition. One field may be attached to many categories.
type Field struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"not null"`
	Type       FieldType  `gorm:"size:16;not null"`
	Categories []Category `gorm:"many2many:category_fields;"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewField validates the name and type and returns an unsaved field.
func NewField(name, fieldType string) (*Field, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidField)
	}
	t, err := ParseFieldType(fieldType)
	if err != nil {
		return nil, err
	}
	return &Field{ID: uuid.New(), Name: name, Type: t}, nil
}

func (f *Field) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
