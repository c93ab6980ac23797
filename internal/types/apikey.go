package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KeyHash is the hex SHA-256 digest of the plaintext key; the plaintext is
// never stored. KeyLast4 is a display hint only and may be absent when the
// storage schema predates it.
type ApiKey struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	KeyHash   string         `gorm:"column:key_hash;not null;index" json:"-"`
	KeyLast4  string         `gorm:"column:key_last4" json:"-"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	LastUsed  *time.Time     `gorm:"column:last_used" json:"last_used,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ApiKey) TableName() string { return "api_key" }
