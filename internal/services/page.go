package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/internal/utils"
)

type PageService struct {
	store store.EntityStore
}

func NewPageService(s store.EntityStore) *PageService {
	return &PageService{store: s}
}

type CreatePageRequest struct {
	Name string `json:"name" binding:"max=200"`
	Slug string `json:"slug" binding:"max=200"`
}

type RenamePageRequest struct {
	Name string `json:"name" binding:"max=200"`
	Slug string `json:"slug" binding:"max=200"`
}

type UpdatePageMetaRequest struct {
	MetaTitle       *string        `json:"meta_title" binding:"omitempty,max=200"`
	MetaDescription *string        `json:"meta_description" binding:"omitempty,max=500"`
	Settings        models.JSONMap `json:"settings"`
}

// List returns the project's pages in creation order.
func (s *PageService) List(ctx context.Context, projectID string) ([]models.Page, error) {
	pages, err := s.store.ListPages(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []models.Page{}
	}
	return pages, nil
}

// Get returns a page of the project; pages of other projects read as not found.
func (s *PageService) Get(ctx context.Context, projectID, pageID string) (*models.Page, error) {
	page, err := s.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page.ProjectID != projectID {
		return nil, store.ErrNotFound
	}
	return page, nil
}

// Create adds a page. The slug defaults to the slugified name and the page
// becomes the homepage only when the project has no page yet.
func (s *PageService) Create(ctx context.Context, projectID string, req *CreatePageRequest) (*models.Page, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}

	existing, err := s.store.ListPages(ctx, projectID)
	if err != nil {
		return nil, err
	}

	page := &models.Page{
		ProjectID:  projectID,
		Name:       name,
		Slug:       slug,
		IsHomepage: len(existing) == 0,
		Settings:   models.JSONMap{},
	}
	if err := s.store.CreatePage(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Rename sets a page's name and slug. An empty slug is derived from the name.
func (s *PageService) Rename(ctx context.Context, projectID, pageID string, req *RenamePageRequest) (*models.Page, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}

	page, err := s.Get(ctx, projectID, pageID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdatePage(ctx, pageID, map[string]interface{}{"name": name, "slug": slug}); err != nil {
		return nil, err
	}
	page.Name = name
	page.Slug = slug
	return page, nil
}

// UpdateMeta sets SEO fields and merges settings keys into the page settings.
func (s *PageService) UpdateMeta(ctx context.Context, projectID, pageID string, req *UpdatePageMetaRequest) (*models.Page, error) {
	page, err := s.Get(ctx, projectID, pageID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.MetaTitle != nil {
		updates["meta_title"] = *req.MetaTitle
		page.MetaTitle = req.MetaTitle
	}
	if req.MetaDescription != nil {
		updates["meta_description"] = *req.MetaDescription
		page.MetaDescription = req.MetaDescription
	}
	if req.Settings != nil {
		page.Settings = page.Settings.Merge(req.Settings)
		updates["settings"] = page.Settings
	}
	if len(updates) == 0 {
		return page, nil
	}
	if err := s.store.UpdatePage(ctx, pageID, updates); err != nil {
		return nil, err
	}
	return page, nil
}

// Delete removes the page's components, then the page. If the first step
// fails the page is kept.
func (s *PageService) Delete(ctx context.Context, projectID, pageID string) error {
	if _, err := s.Get(ctx, projectID, pageID); err != nil {
		return err
	}
	if err := s.store.DeleteComponentsByPage(ctx, pageID); err != nil {
		return fmt.Errorf("delete components: %w", err)
	}
	return s.store.DeletePage(ctx, pageID)
}

// SetHomepage clears the flag on every page of the project, then sets it on
// pageID. The two writes are not atomic.
func (s *PageService) SetHomepage(ctx context.Context, projectID, pageID string) error {
	if _, err := s.Get(ctx, projectID, pageID); err != nil {
		return err
	}
	if err := s.store.ClearHomepage(ctx, projectID); err != nil {
		return fmt.Errorf("clear homepage: %w", err)
	}
	return s.store.UpdatePage(ctx, pageID, map[string]interface{}{"is_homepage": true})
}
