package store

import (
	"context"
	"errors"
	"strings"

	"github.com/huangang/sitecraft/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements EntityStore on a relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle for maintenance jobs.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Projects

func (s *GormStore) ListProjects(ctx context.Context, userID, search string) ([]models.Project, error) {
	var projects []models.Project
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", like, like)
	}
	if err := query.Order("updated_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *GormStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (s *GormStore) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *GormStore) UpdateProject(ctx context.Context, id string, updates map[string]interface{}) error {
	return affected(s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(updates))
}

func (s *GormStore) DeleteProject(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{}))
}

// Pages

func (s *GormStore) ListPages(ctx context.Context, projectID string) ([]models.Page, error) {
	var pages []models.Page
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (s *GormStore) GetPage(ctx context.Context, id string) (*models.Page, error) {
	var page models.Page
	if err := s.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &page, nil
}

func (s *GormStore) CreatePage(ctx context.Context, page *models.Page) error {
	return s.db.WithContext(ctx).Create(page).Error
}

func (s *GormStore) UpdatePage(ctx context.Context, id string, updates map[string]interface{}) error {
	return affected(s.db.WithContext(ctx).Model(&models.Page{}).Where("id = ?", id).Updates(updates))
}

func (s *GormStore) DeletePage(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Page{}))
}

// ClearHomepage unsets is_homepage on every page of the project.
func (s *GormStore) ClearHomepage(ctx context.Context, projectID string) error {
	return s.db.WithContext(ctx).
		Model(&models.Page{}).
		Where("project_id = ?", projectID).
		Update("is_homepage", false).Error
}

func (s *GormStore) DeletePagesByProject(ctx context.Context, projectID string) error {
	return s.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.Page{}).Error
}

// Components

func (s *GormStore) ListComponents(ctx context.Context, pageID string) ([]models.Component, error) {
	var components []models.Component
	err := s.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("order_index ASC").
		Find(&components).Error
	if err != nil {
		return nil, err
	}
	return components, nil
}

func (s *GormStore) CreateComponent(ctx context.Context, component *models.Component) error {
	return s.db.WithContext(ctx).Create(component).Error
}

func (s *GormStore) UpdateComponent(ctx context.Context, id string, updates map[string]interface{}) error {
	return affected(s.db.WithContext(ctx).Model(&models.Component{}).Where("id = ?", id).Updates(updates))
}

func (s *GormStore) DeleteComponent(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Component{}))
}

func (s *GormStore) DeleteComponentsByPage(ctx context.Context, pageID string) error {
	return s.db.WithContext(ctx).Where("page_id = ?", pageID).Delete(&models.Component{}).Error
}

// DeleteComponentsByProject removes the components of every page of the project.
func (s *GormStore) DeleteComponentsByProject(ctx context.Context, projectID string) error {
	pageIDs := s.db.Model(&models.Page{}).Select("id").Where("project_id = ?", projectID)
	return s.db.WithContext(ctx).Where("page_id IN (?)", pageIDs).Delete(&models.Component{}).Error
}

// Preferences

func (s *GormStore) GetPreference(ctx context.Context, userID string) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := s.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &pref, nil
}

// SavePreference inserts or replaces the user's preference row.
func (s *GormStore) SavePreference(ctx context.Context, pref *models.UserPreference) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "updated_at"}),
	}).Create(pref).Error
}
