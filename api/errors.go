package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skybook/skybook/internal/domain"
	"github.com/skybook/skybook/internal/metrics"
)

// CountErrors increments the error counter for every request that ends
// in a 4xx or 5xx, labeled by route. A nil Metrics disables counting.
func CountErrors(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if m == nil || c.Writer.Status() < http.StatusBadRequest {
			return
		}
		operation := c.FullPath()
		if operation == "" {
			operation = "unmatched"
		}
		m.Errors.WithLabelValues(c.Request.Method + " " + operation).Inc()
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes:
// validation failures are 400, missing records 404, missing auth 401 and
// broken invariants 409. Anything else is a 500.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case domain.IsInvariant(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
