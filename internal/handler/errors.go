package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-history-backend/internal/analysis"
	"github.com/jengzang/route-history-backend/internal/logger"
	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/repository"
	"github.com/jengzang/route-history-backend/pkg/response"
)

// respondError maps service errors onto HTTP statuses. Unclassified errors are
// logged and reported as fallback with status 500.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, verr.Error())
	case errors.Is(err, repository.ErrTripNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, analysis.ErrUnknownAnalyzer):
		response.BadRequest(c, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.Error(c, http.StatusServiceUnavailable, "Request cancelled")
	default:
		c.Error(err)
		logger.Error(fallback, "path", c.FullPath(), "error", err)
		response.InternalError(c, fallback)
	}
}
