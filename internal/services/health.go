package services

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"harborview/internal/database"
)

// HealthCheck reports process liveness and record-store reachability. A
// degraded store downgrades the status but still answers 200 so load
// balancers distinguish "up but unhealthy" from "down".
func HealthCheck(c *gin.Context) {
	status := "ok"
	dbStatus := "connected"
	if err := database.HealthCheck(); err != nil {
		status = "degraded"
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
