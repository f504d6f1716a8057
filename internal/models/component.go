package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Component types. The set is closed; anything else is rejected on creation
// but still tolerated by the exporters.
const (
	ComponentSection   = "section"
	ComponentHeader    = "header"
	ComponentFooter    = "footer"
	ComponentHero      = "hero"
	ComponentText      = "text"
	ComponentImage     = "image"
	ComponentButton    = "button"
	ComponentForm      = "form"
	ComponentCard      = "card"
	ComponentGrid      = "grid"
	ComponentContainer = "container"
	ComponentNavbar    = "navbar"
	ComponentCustom    = "custom"
)

// ComponentTypes lists every accepted component_type value.
var ComponentTypes = []string{
	ComponentSection,
	ComponentHeader,
	ComponentFooter,
	ComponentHero,
	ComponentText,
	ComponentImage,
	ComponentButton,
	ComponentForm,
	ComponentCard,
	ComponentGrid,
	ComponentContainer,
	ComponentNavbar,
	ComponentCustom,
}

// Component is a typed content block placed on a page. ParentID is a
// same-page back-reference kept for future nesting; rendering is flat.
type Component struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	PageID        string    `gorm:"size:36;index;not null" json:"page_id"`
	ParentID      *string   `gorm:"size:36" json:"parent_id"`
	ComponentType string    `gorm:"size:30;not null" json:"component_type"`
	Name          *string   `gorm:"size:200" json:"name"`
	Props         JSONMap   `gorm:"type:text" json:"props"`
	Styles        JSONMap   `gorm:"type:text" json:"styles"`
	Content       JSONMap   `gorm:"type:text" json:"content"`
	OrderIndex    int       `gorm:"not null;default:0;index" json:"order_index"`
	IsVisible     bool      `json:"is_visible"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Component) TableName() string { return "components" }

func (c *Component) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
