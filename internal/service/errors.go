package service

import "errors"

var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrParentCategoryNotFound = errors.New("parent category not found")
	ErrFieldNotFound          = errors.New("field not found")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrInvalidEvent           = errors.New("invalid event")
)
