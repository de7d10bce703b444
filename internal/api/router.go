package api

import (
	"github.com/gin-gonic/gin"
	"github.com/moisesmmele/market-analysis/internal/api/handler"
	"github.com/moisesmmele/market-analysis/internal/api/middleware"
	"github.com/moisesmmele/market-analysis/internal/domain"
	"github.com/moisesmmele/market-analysis/internal/logger"
	"github.com/moisesmmele/market-analysis/internal/mappings"
	"github.com/moisesmmele/market-analysis/internal/repository"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	db *gorm.DB,
	sessions *repository.SessionRepository,
	cache *mappings.Cache,
	allTopics []domain.Topic,
	log *logger.Logger,
	mode string,
) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler(db)
	sessionHandler := handler.NewSessionHandler(sessions, cache, allTopics)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/sessions", sessionHandler.ListSessions)
		v1.GET("/sessions/:id", sessionHandler.GetSession)
		v1.POST("/sessions/:id/process", sessionHandler.ProcessSession)
	}

	return r
}
