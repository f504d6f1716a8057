package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/registry"
	"github.com/huangang/sitecraft/pkg/response"
)

// Catalog returns the component palette grouped by category
// GET /api/catalog
func Catalog(c *gin.Context) {
	response.Success(c, gin.H{
		"categories": registry.Categories(),
		"groups":     registry.Grouped(),
	})
}
