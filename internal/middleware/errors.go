package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error responses carry a single human-readable detail message. Backend
// failure specifics stay in the logs; callers never see raw model output
// or credentials state.

// RespondDetail sends an error response with the given status.
func RespondDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, detail string) {
	RespondDetail(c, http.StatusBadRequest, detail)
}

// InternalError sends a 500 error
func InternalError(c *gin.Context, detail string) {
	RespondDetail(c, http.StatusInternalServerError, detail)
}
