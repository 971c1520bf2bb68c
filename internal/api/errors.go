package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wirefeed/wirefeed/internal/service"
	"github.com/wirefeed/wirefeed/pkg/logging"
)

// writeError maps a service error kind to a status code and renders the
// uniform {"detail": "..."} body. Conflicts render as 400, same as
// validation failures.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	detail := "Internal server error."

	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	default:
		logging.WithComponent("api").Error("Unhandled service error", zap.Error(err))
	}

	if msg, ok := service.Detail(err); ok {
		detail = msg
	}

	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
