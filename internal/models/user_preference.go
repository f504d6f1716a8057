package models

import "time"

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// UserPreference holds per-user UI settings restored on load.
type UserPreference struct {
	UserID    string    `gorm:"primaryKey;size:64" json:"user_id"`
	Theme     string    `gorm:"size:20;not null;default:system" json:"theme"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserPreference) TableName() string { return "user_preferences" }

// IsValidTheme reports whether theme is light, dark or system.
func IsValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}
