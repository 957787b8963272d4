package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"opinion-collector/internal/model"
)

// TokenStore is the persistence contract of the token sweep.
type TokenStore interface {
	FindAll(ctx context.Context) ([]model.Token, error)
	DeleteByToken(ctx context.Context, token string) error
}

// TokenCleanupService removes expired auth tokens.
type TokenCleanupService struct {
	tokens TokenStore
	log    *zap.Logger
	now    func() time.Time
}

func NewTokenCleanupService(tokens TokenStore, log *zap.Logger) *TokenCleanupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TokenCleanupService{tokens: tokens, log: log.Named("tokens"), now: time.Now}
}

// Run deletes every token that expired before now and returns how many were removed.
// The first failing delete stops the sweep; tokens already removed stay removed.
func (s *TokenCleanupService) Run(ctx context.Context) (int, error) {
	tokens, err := s.tokens.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load tokens: %w", err)
	}

	now := s.now()
	deleted := 0
	for _, token := range tokens {
		select {
		case <-ctx.Done():
			return deleted, ctx.Err()
		default:
		}
		if !token.Expired(now) {
			continue
		}
		if err := s.tokens.DeleteByToken(ctx, token.Token); err != nil {
			return deleted, err
		}
		deleted++
	}

	s.log.Info("expired tokens deleted", zap.Int("count", deleted), zap.Int("scanned", len(tokens)))
	return deleted, nil
}
