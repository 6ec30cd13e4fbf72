package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaffContextKey is where the acting staff id lands in the gin context.
const StaffContextKey = "staffID"

// StaffContextMiddleware lifts the acting staff member's id out of the
// X-Staff-ID header, set upstream by the clinic's auth gateway. The id is
// used for slot audit trails only; authentication itself happens before
// requests reach this service.
func StaffContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := c.GetHeader("X-Staff-ID")
		if staffID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing X-Staff-ID header"})
			return
		}
		c.Set(StaffContextKey, staffID)
		c.Next()
	}
}

// ActingStaff returns the staff id placed by StaffContextMiddleware.
func ActingStaff(c *gin.Context) string {
	if v, ok := c.Get(StaffContextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
