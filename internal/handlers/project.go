package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/middleware"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	sessions       *services.SessionManager
}

func NewProjectHandler(s store.EntityStore, sessions *services.SessionManager) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(s),
		sessions:       sessions,
	}
}

// List returns the caller's projects, most recently updated first
// GET /api/projects?search=
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), middleware.GetUserID(c), c.Query("search"))
	if err != nil {
		writeError(c, err, "")
		return
	}

	response.Success(c, projects)
}

// GetByID returns a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	response.Success(c, project)
}

// Create creates a project with its homepage
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		writeError(c, err, "")
		return
	}

	response.Created(c, project)
}

// Update updates a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err, "project not found")
		return
	}

	response.Success(c, project)
}

// Save bumps the project's updated_at
// POST /api/projects/:id/save
func (h *ProjectHandler) Save(c *gin.Context) {
	if err := h.projectService.Touch(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		writeError(c, err, "project not found")
		return
	}

	response.Success(c, gin.H{"message": "project saved"})
}

// Delete deletes a project with its pages and components
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.projectService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		writeError(c, err, "project not found")
		return
	}
	h.sessions.CloseProject(id)

	response.Success(c, gin.H{"message": "project deleted successfully"})
}
