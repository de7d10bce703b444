package main

import (
	"flag"
	"fmt"

	"github.com/moisesmmele/market-analysis/internal/api"
	"github.com/moisesmmele/market-analysis/internal/config"
	"github.com/moisesmmele/market-analysis/internal/logger"
	"github.com/moisesmmele/market-analysis/internal/mappings"
	"github.com/moisesmmele/market-analysis/internal/repository"
	"github.com/moisesmmele/market-analysis/internal/topics"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.GetDefault().WithError(err).Fatal("Failed to load config")
	}

	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		LogFile:     cfg.Log.File,
		ServiceName: "market-analysis-api",
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Warm the mapping cache up front: serving without it is pointless.
	cache := mappings.NewCache(cfg.Resources.MappingsFile, cfg.Mappings.Provider, cfg.Mappings.Platform)
	if _, err := cache.Get(); err != nil {
		appLogger.WithError(err).Fatal("Failed to load mapping document")
	}

	allTopics, err := topics.Load(cfg.Resources.TopicsDir)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load topics")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	sessionRepo := repository.NewSessionRepository(db)

	router := api.SetupRouter(db, sessionRepo, cache, allTopics, appLogger, cfg.Server.Mode)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.WithField("addr", addr).Info("Starting API server")
	if err := router.Run(addr); err != nil {
		appLogger.WithError(err).Fatal("Server exited")
	}
}
