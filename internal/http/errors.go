package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"paragraph-titler/internal/apperror"
)

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindAuth:
		return http.StatusUnauthorized
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code and aborts the request. Dependency
// failures are logged in full and reported to the client generically.
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindDependency {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
	}
	c.AbortWithStatusJSON(statusForKind(kind), gin.H{"error": apperror.Message(err)})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
