package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImageIDs is the ordered list of bucket object keys, serialized as JSON.
// Blobs are uploaded before the row is created and removed before the row
// is deleted.
type ImageNote struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID  *uuid.UUID     `gorm:"type:uuid;index" json:"course_id,omitempty"`
	ChapterID *uuid.UUID     `gorm:"type:uuid;index" json:"chapter_id,omitempty"`
	ImageIDs  datatypes.JSON `gorm:"column:image_ids;type:jsonb" json:"image_ids"`
	Caption   string         `gorm:"column:caption" json:"caption,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ImageNote) TableName() string { return "image_note" }
