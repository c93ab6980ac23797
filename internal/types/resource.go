package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ResourceTypePDF     = "pdf"
	ResourceTypeWebpage = "webpage"
	ResourceTypeYoutube = "youtube"
	ResourceTypeChatGPT = "chatgpt"
	ResourceTypeGemini  = "gemini"
	ResourceTypeFile    = "file"
)

func ValidResourceTypes() []string {
	return []string{
		ResourceTypePDF,
		ResourceTypeWebpage,
		ResourceTypeYoutube,
		ResourceTypeChatGPT,
		ResourceTypeGemini,
		ResourceTypeFile,
	}
}

// ResourceTypeRequiresURL reports whether the type is link-backed.
func ResourceTypeRequiresURL(t string) bool {
	switch t {
	case ResourceTypeWebpage, ResourceTypeYoutube, ResourceTypeChatGPT, ResourceTypeGemini:
		return true
	default:
		return false
	}
}

type Resource struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChapterID uuid.UUID      `gorm:"type:uuid;not null;index" json:"chapter_id"`
	Chapter   *Chapter       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChapterID;references:ID" json:"chapter,omitempty"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Type      string         `gorm:"column:type;not null" json:"type"`
	URL       *string        `gorm:"column:url" json:"url,omitempty"`
	FileID    *string        `gorm:"column:file_id" json:"file_id,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Resource) TableName() string { return "resource" }
