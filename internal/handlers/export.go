package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/export"
	"github.com/huangang/sitecraft/internal/middleware"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/pkg/response"
)

type ExportHandler struct {
	projectService *services.ProjectService
	exportService  *services.ExportService
}

func NewExportHandler(s store.EntityStore, engine *export.Engine) *ExportHandler {
	return &ExportHandler{
		projectService: services.NewProjectService(s),
		exportService:  services.NewExportService(s, engine),
	}
}

// Export renders the project as html, json or react
// GET /api/projects/:id/export?format=html&download=1
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", export.FormatHTML)
	if !export.ValidFormat(format) {
		response.BadRequest(c, "unsupported export format: "+format)
		return
	}

	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	project, err := h.projectService.Get(ctx, userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	result, err := h.exportService.Export(ctx, project, format)
	if err != nil {
		writeError(c, err, "")
		return
	}
	services.LogInfo("export", format, "exported "+result.FileName, userID, c.ClientIP(), c.Request.UserAgent(), map[string]string{
		"project_id": project.ID,
	})

	if c.Query("download") == "1" {
		response.Attachment(c, result.FileName, result.ContentType, []byte(result.Content))
		return
	}
	response.Success(c, result)
}

// Preview renders one page as the editor preview
// GET /api/projects/:id/pages/:pageId/preview?viewport=desktop
func (h *ExportHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()
	project, err := h.projectService.Get(ctx, middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	html, err := h.exportService.Preview(ctx, project, c.Param("pageId"), c.DefaultQuery("viewport", export.ViewportDesktop))
	if err != nil {
		writeError(c, err, "page not found")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
