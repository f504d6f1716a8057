package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
	ProjectStatusArchived  = "archived"
)

// Project is a user-owned website being built.
type Project struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:64;index;not null" json:"user_id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Description  *string   `gorm:"type:text" json:"description"`
	Status       string    `gorm:"size:20;not null;default:draft" json:"status"`
	ThumbnailURL *string   `gorm:"size:500" json:"thumbnail_url"`
	Settings     JSONMap   `gorm:"type:text" json:"settings"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `gorm:"index" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = ProjectStatusDraft
	}
	return nil
}

// IsPublished returns true if the project is published.
func (p *Project) IsPublished() bool {
	return p.Status == ProjectStatusPublished
}

// IsValidProjectStatus reports whether status is one of draft, published, archived.
func IsValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusDraft, ProjectStatusPublished, ProjectStatusArchived:
		return true
	}
	return false
}
