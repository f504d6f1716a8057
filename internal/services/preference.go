package services

import (
	"context"
	"errors"
	"time"

	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/store"
)

type PreferenceService struct {
	store store.EntityStore
}

func NewPreferenceService(s store.EntityStore) *PreferenceService {
	return &PreferenceService{store: s}
}

type UpdatePreferenceRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// Get returns the stored preference or the system theme default.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*models.UserPreference, error) {
	pref, err := s.store.GetPreference(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.UserPreference{UserID: userID, Theme: models.ThemeSystem}, nil
	}
	if err != nil {
		return nil, err
	}
	return pref, nil
}

func (s *PreferenceService) SetTheme(ctx context.Context, userID, theme string) (*models.UserPreference, error) {
	if !models.IsValidTheme(theme) {
		return nil, ErrInvalidTheme
	}
	pref := &models.UserPreference{UserID: userID, Theme: theme, UpdatedAt: time.Now()}
	if err := s.store.SavePreference(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}
