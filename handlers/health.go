package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicdesk/utils"
)

// HealthHandler reports the last recorded dependency health snapshot.
// GET /health
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
