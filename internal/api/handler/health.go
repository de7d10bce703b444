package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and dependency readiness.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a health handler bound to the database handle.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health pings the database and reports the overall service status. An
// unreachable database degrades the response to 503 so load balancers stop
// routing process requests here.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	database := "ok"

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		database = "unreachable"
	}

	c.JSON(status, gin.H{
		"service":  "market-analysis",
		"status":   statusWord(status),
		"database": database,
	})
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
