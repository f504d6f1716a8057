// Package store defines the persistence contract consumed by the builder core
// and ships a gorm-backed implementation of it.
package store

import (
	"context"
	"errors"

	"github.com/huangang/sitecraft/internal/models"
)

var ErrNotFound = errors.New("record not found")

// EntityStore is the CRUD surface the builder needs: filter by foreign key,
// order by a column, update by partial map. Nothing here is transactional;
// multi-step operations are composed by callers as independent calls.
type EntityStore interface {
	ListProjects(ctx context.Context, userID, search string) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteProject(ctx context.Context, id string) error

	ListPages(ctx context.Context, projectID string) ([]models.Page, error)
	GetPage(ctx context.Context, id string) (*models.Page, error)
	CreatePage(ctx context.Context, page *models.Page) error
	UpdatePage(ctx context.Context, id string, updates map[string]interface{}) error
	DeletePage(ctx context.Context, id string) error
	ClearHomepage(ctx context.Context, projectID string) error
	DeletePagesByProject(ctx context.Context, projectID string) error

	ListComponents(ctx context.Context, pageID string) ([]models.Component, error)
	CreateComponent(ctx context.Context, component *models.Component) error
	UpdateComponent(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteComponent(ctx context.Context, id string) error
	DeleteComponentsByPage(ctx context.Context, pageID string) error
	DeleteComponentsByProject(ctx context.Context, projectID string) error

	GetPreference(ctx context.Context, userID string) (*models.UserPreference, error)
	SavePreference(ctx context.Context, pref *models.UserPreference) error
}
