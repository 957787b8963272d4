package model

import (
	"time"

	"github.com/google/uuid"
)

// Token is an issued auth credential. Expired tokens are swept daily.
type Token struct {
	Token     string    `gorm:"primaryKey;size:512"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

// Expired is true once ExpiresAt lies strictly before now.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
