package instructor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Polliwog/internal/apperr"
	"github.com/lshigami/Polliwog/internal/dto"
	"github.com/lshigami/Polliwog/internal/service"
)

// respondError maps the service's error kinds onto HTTP statuses:
// ValidationError → 400, NotFoundError → 404, unconfigured explainer → 503,
// anything else → 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case apperr.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrExplainerNotConfigured):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}
