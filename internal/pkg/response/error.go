package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/log"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Error sends a JSON error response.
// AppErrors carry their own status code. Internal failures, including plain
// errors, are logged with their cause and reported without it.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Wrap(err, http.StatusInternalServerError, "internal server error")
	}

	switch apperror.KindOf(appErr) {
	case apperror.KindInternal:
		log.Error(c.Request.Context(), appErr.Message,
			slog.String("path", c.Request.URL.Path),
			log.Err(appErr.Err),
		)
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, Kind: string(appErr.Kind)})
	}
}

// BadRequest reports a body or query that failed to bind.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
}
