package api

import (
	"errors"
	"net/http"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/plangen"
	"alcyxob/training-planner/internal/repository"
	"alcyxob/training-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service and repository errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrUnknownOperation),
		errors.Is(err, plangen.ErrUnsupportedConfiguration),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, plangen.ErrInvalidPlanFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes err with the status statusFor picks. Internal
// failures keep their detail out of the response body.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	code := statusFor(err)

	var conflict *repository.VersionConflictError
	switch {
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(code, gin.H{
			"error":           "Plan was modified by another request; reload and retry",
			"expectedVersion": conflict.Expected,
			"currentVersion":  conflict.Actual,
			"retryable":       true,
		})
	case code == http.StatusInternalServerError:
		abortWithError(c, code, "Internal server error")
	default:
		abortWithError(c, code, err.Error())
	}
}
