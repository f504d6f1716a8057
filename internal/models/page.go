package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default homepage created alongside every new project.
const (
	DefaultHomepageName = "Accueil"
	DefaultHomepageSlug = "home"
)

// Page is a named, sluggable unit of a project.
type Page struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID       string    `gorm:"size:36;index;not null" json:"project_id"`
	Name            string    `gorm:"size:200;not null" json:"name"`
	Slug            string    `gorm:"size:200;not null" json:"slug"`
	IsHomepage      bool      `gorm:"default:false" json:"is_homepage"`
	MetaTitle       *string   `gorm:"size:200" json:"meta_title"`
	MetaDescription *string   `gorm:"size:500" json:"meta_description"`
	Settings        JSONMap   `gorm:"type:text" json:"settings"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Page) TableName() string { return "pages" }

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
