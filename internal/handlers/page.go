package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/middleware"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/pkg/response"
)

// PageHandler routes page writes through the caller's editing session so
// its page list and current page stay in sync.
type PageHandler struct {
	projectService *services.ProjectService
	pageService    *services.PageService
	sessions       *services.SessionManager
}

func NewPageHandler(s store.EntityStore, sessions *services.SessionManager) *PageHandler {
	return &PageHandler{
		projectService: services.NewProjectService(s),
		pageService:    services.NewPageService(s),
		sessions:       sessions,
	}
}

// List returns the project's pages in creation order
// GET /api/projects/:id/pages
func (h *PageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	project, err := h.projectService.Get(ctx, middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	pages, err := h.pageService.List(ctx, project.ID)
	if err != nil {
		writeError(c, err, "")
		return
	}
	response.Success(c, pages)
}

// Create adds a page and makes it the current page
// POST /api/projects/:id/pages
func (h *PageHandler) Create(c *gin.Context) {
	var req services.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	page, err := session.CreatePage(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err, "")
		return
	}
	response.Created(c, page)
}

// Rename renames a page
// PUT /api/projects/:id/pages/:pageId
func (h *PageHandler) Rename(c *gin.Context) {
	var req services.RenamePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	page, err := session.RenamePage(c.Request.Context(), c.Param("pageId"), &req)
	if err != nil {
		writeError(c, err, "page not found")
		return
	}
	response.Success(c, page)
}

// UpdateMeta updates the page's SEO fields and settings
// PUT /api/projects/:id/pages/:pageId/meta
func (h *PageHandler) UpdateMeta(c *gin.Context) {
	var req services.UpdatePageMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	project, err := h.projectService.Get(ctx, middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	page, err := h.pageService.UpdateMeta(ctx, project.ID, c.Param("pageId"), &req)
	if err != nil {
		writeError(c, err, "page not found")
		return
	}
	response.Success(c, page)
}

// Delete deletes a page and its components
// DELETE /api/projects/:id/pages/:pageId
func (h *PageHandler) Delete(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	if err := session.DeletePage(c.Request.Context(), c.Param("pageId")); err != nil {
		writeError(c, err, "page not found")
		return
	}
	response.Success(c, gin.H{"message": "page deleted successfully"})
}

// SetHomepage makes the page the project's only homepage
// POST /api/projects/:id/pages/:pageId/homepage
func (h *PageHandler) SetHomepage(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	if err := session.SetHomepage(c.Request.Context(), c.Param("pageId")); err != nil {
		writeError(c, err, "page not found")
		return
	}
	response.Success(c, session.Pages())
}
