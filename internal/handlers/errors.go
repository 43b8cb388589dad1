package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub-dev/studyhub/internal/logging"
	"github.com/studyhub-dev/studyhub/internal/services"
)

// respondServiceError maps the service error taxonomy onto HTTP: the
// not-found/not-authorized outcome becomes 404, business conflicts become
// 409 with their message, anything else is logged and hidden behind a 500.
func respondServiceError(ctx *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, services.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}

	if services.IsConflict(err) {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	logging.Logger.WithError(err).Error("unexpected service error")
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
