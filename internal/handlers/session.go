package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/middleware"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/pkg/response"
)

// SessionHandler exposes the caller's editing session on a project.
type SessionHandler struct {
	sessions *services.SessionManager
}

func NewSessionHandler(sessions *services.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type selectPageRequest struct {
	PageID string `json:"page_id" binding:"required"`
}

type addComponentRequest struct {
	Type string `json:"type" binding:"required"`
}

type selectComponentRequest struct {
	ComponentID string `json:"component_id"`
}

func (h *SessionHandler) session(c *gin.Context) (*services.EditingSession, bool) {
	session, err := h.sessions.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "project not found")
		return nil, false
	}
	return session, true
}

// State returns the session's pages, current page, components and selection
// GET /api/projects/:id/session
func (h *SessionHandler) State(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, session.State())
}

// SelectPage switches the current page
// POST /api/projects/:id/session/page
func (h *SessionHandler) SelectPage(c *gin.Context) {
	var req selectPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.SelectPage(c.Request.Context(), req.PageID); err != nil {
		writeError(c, err, "page not found")
		return
	}
	response.Success(c, session.State())
}

// AddComponent appends a component of the given type to the current page
// POST /api/projects/:id/session/components
func (h *SessionHandler) AddComponent(c *gin.Context) {
	var req addComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session, ok := h.session(c)
	if !ok {
		return
	}

	component, err := session.AddComponent(c.Request.Context(), req.Type)
	if err != nil {
		writeError(c, err, "")
		return
	}
	response.Created(c, component)
}

// UpdateComponent applies a patch locally and queues its persistence
// PATCH /api/projects/:id/session/components/:componentId
func (h *SessionHandler) UpdateComponent(c *gin.Context) {
	var patch services.ComponentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session, ok := h.session(c)
	if !ok {
		return
	}

	component, err := session.UpdateComponent(c.Request.Context(), c.Param("componentId"), &patch)
	if err != nil {
		writeError(c, err, "component not found")
		return
	}
	response.Accepted(c, component)
}

// DeleteComponent removes a component locally and queues the delete
// DELETE /api/projects/:id/session/components/:componentId
func (h *SessionHandler) DeleteComponent(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.DeleteComponent(c.Request.Context(), c.Param("componentId")); err != nil {
		writeError(c, err, "component not found")
		return
	}
	response.Accepted(c, gin.H{"message": "component deletion queued"})
}

// Select marks a component as selected; an empty id clears the selection
// POST /api/projects/:id/session/select
func (h *SessionHandler) Select(c *gin.Context) {
	var req selectComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session, ok := h.session(c)
	if !ok {
		return
	}

	if req.ComponentID == "" {
		session.ClearSelection()
	} else if err := session.SelectComponent(req.ComponentID); err != nil {
		writeError(c, err, "component not found")
		return
	}
	response.Success(c, session.State())
}
