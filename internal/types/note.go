package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A nil CourseID/ChapterID marks a quick note with no course or chapter
// scope. Responses omit a nil scope; requests may spell it "none".
type Note struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID  *uuid.UUID     `gorm:"type:uuid;index" json:"course_id,omitempty"`
	ChapterID *uuid.UUID     `gorm:"type:uuid;index" json:"chapter_id,omitempty"`
	Content   string         `gorm:"column:content;not null" json:"content"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Note) TableName() string { return "note" }
