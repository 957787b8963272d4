package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"opinion-collector/internal/model"
)

// TokenRepository persists issued auth tokens.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindAll(ctx context.Context) ([]model.Token, error) {
	var tokens []model.Token
	if err := r.db.WithContext(ctx).Order("expires_at ASC").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *TokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Token{}).Error; err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
