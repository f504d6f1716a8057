package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/middleware"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/pkg/response"
)

type PreferenceHandler struct {
	preferenceService *services.PreferenceService
}

func NewPreferenceHandler(s store.EntityStore) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: services.NewPreferenceService(s)}
}

// Get returns the caller's display preferences
// GET /api/me/preferences
func (h *PreferenceHandler) Get(c *gin.Context) {
	pref, err := h.preferenceService.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err, "")
		return
	}
	response.Success(c, pref)
}

// Update sets the caller's theme
// PUT /api/me/preferences
func (h *PreferenceHandler) Update(c *gin.Context) {
	var req services.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pref, err := h.preferenceService.SetTheme(c.Request.Context(), middleware.GetUserID(c), req.Theme)
	if err != nil {
		writeError(c, err, "")
		return
	}
	response.Success(c, pref)
}
