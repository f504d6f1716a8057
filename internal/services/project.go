package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/store"
)

type ProjectService struct {
	store store.EntityStore
}

func NewProjectService(s store.EntityStore) *ProjectService {
	return &ProjectService{store: s}
}

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"max=200"`
	Description *string `json:"description"`
}

type UpdateProjectRequest struct {
	Name         *string        `json:"name" binding:"omitempty,max=200"`
	Description  *string        `json:"description"`
	Status       *string        `json:"status"`
	ThumbnailURL *string        `json:"thumbnail_url" binding:"omitempty,max=500"`
	Settings     models.JSONMap `json:"settings"`
}

// List returns the owner's projects, most recently updated first. A non-empty
// search keeps projects whose name or description contains it.
func (s *ProjectService) List(ctx context.Context, userID, search string) ([]models.Project, error) {
	projects, err := s.store.ListProjects(ctx, userID, search)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// Get returns the project when it belongs to userID. Projects owned by
// someone else read as not found.
func (s *ProjectService) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, store.ErrNotFound
	}
	return project, nil
}

// Create stores a draft project and its default homepage. The two inserts are
// independent: when the homepage insert fails the project remains.
func (s *ProjectService) Create(ctx context.Context, userID string, req *CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	project := &models.Project{
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		Status:      models.ProjectStatusDraft,
		Settings:    models.JSONMap{},
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	homepage := &models.Page{
		ProjectID:  project.ID,
		Name:       models.DefaultHomepageName,
		Slug:       models.DefaultHomepageSlug,
		IsHomepage: true,
		Settings:   models.JSONMap{},
	}
	if err := s.store.CreatePage(ctx, homepage); err != nil {
		return project, fmt.Errorf("create homepage: %w", err)
	}

	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, id string, req *UpdateProjectRequest) (*models.Project, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = name
	}
	if req.Status != nil {
		if !models.IsValidProjectStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.Settings != nil {
		updates["settings"] = req.Settings
	}

	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.store.UpdateProject(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.store.GetProject(ctx, id)
}

// Touch bumps updated_at so the project sorts first on the dashboard.
func (s *ProjectService) Touch(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.UpdateProject(ctx, id, map[string]interface{}{"updated_at": time.Now()})
}

// Delete removes the project's components, then its pages, then the project.
// Each step is a separate call; a failure stops the cascade where it is.
func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.DeleteComponentsByProject(ctx, id); err != nil {
		return fmt.Errorf("delete components: %w", err)
	}
	if err := s.store.DeletePagesByProject(ctx, id); err != nil {
		return fmt.Errorf("delete pages: %w", err)
	}
	return s.store.DeleteProject(ctx, id)
}
