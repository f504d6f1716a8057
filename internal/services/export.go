package services

import (
	"context"
	"fmt"

	"github.com/huangang/sitecraft/internal/export"
	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/store"
)

type ExportService struct {
	store  store.EntityStore
	engine *export.Engine
}

func NewExportService(s store.EntityStore, engine *export.Engine) *ExportService {
	return &ExportService{store: s, engine: engine}
}

// ExportResult is a rendered artifact ready for download.
type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// Export renders a project in the given format. Pages are fetched in creation
// order, then each page's components by order_index. A failed fetch aborts
// the export; missing data never does.
func (s *ExportService) Export(ctx context.Context, project *models.Project, format string) (*ExportResult, error) {
	fileName, err := export.FileName(project.Name, format)
	if err != nil {
		return nil, err
	}

	pages, err := s.store.ListPages(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	byPage := make(map[string][]models.Component, len(pages))
	for _, p := range pages {
		components, err := s.store.ListComponents(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list components of page %s: %w", p.ID, err)
		}
		byPage[p.ID] = components
	}

	content, err := s.engine.Export(pages, byPage, project.Name, format)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    fileName,
		ContentType: export.ContentType(format),
		Content:     content,
	}, nil
}

// Preview renders one page of the project as the editor preview.
func (s *ExportService) Preview(ctx context.Context, project *models.Project, pageID, viewport string) (string, error) {
	page, err := s.store.GetPage(ctx, pageID)
	if err != nil {
		return "", err
	}
	if page.ProjectID != project.ID {
		return "", store.ErrNotFound
	}
	components, err := s.store.ListComponents(ctx, pageID)
	if err != nil {
		return "", err
	}
	return s.engine.RenderPreview(*page, components, project.Name, viewport), nil
}
