package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/export"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/pkg/logger"
	"github.com/huangang/sitecraft/pkg/response"
)

var validationErrors = []error{
	services.ErrNameRequired,
	services.ErrUnknownComponentType,
	services.ErrInvalidStatus,
	services.ErrInvalidTheme,
	services.ErrInvalidParent,
	services.ErrNoPageSelected,
	services.ErrEmptyPatch,
	export.ErrUnsupportedFormat,
}

// writeError maps a service error to its response envelope.
func writeError(c *gin.Context, err error, notFoundMsg string) {
	mapped := classify(err, notFoundMsg)
	var appErr *response.AppError
	if !errors.As(mapped, &appErr) {
		logger.Error().Err(err).
			Str("request_id", logger.RequestID(c)).
			Str("route", c.FullPath()).
			Msg("request failed")
	}
	response.Error(c, mapped)
}

func classify(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return response.NewError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, services.ErrStaleLoad):
		return response.NewError(http.StatusConflict, err.Error())
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return response.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return err
}
