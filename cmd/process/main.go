package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/moisesmmele/market-analysis/internal/config"
	"github.com/moisesmmele/market-analysis/internal/logger"
	"github.com/moisesmmele/market-analysis/internal/mappings"
	"github.com/moisesmmele/market-analysis/internal/pipeline"
	"github.com/moisesmmele/market-analysis/internal/repository"
	"github.com/moisesmmele/market-analysis/internal/topics"
)

func main() {
	sessionID := flag.String("session", "", "Session id to process")
	topicTitles := flag.String("topics", "", "Comma-separated topic titles; empty processes all")
	outPath := flag.String("out", "", "Write the report JSON to this file instead of stdout")
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
		ServiceName: "market-analysis-process",
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	if *sessionID == "" {
		appLogger.Fatal("A session id is required (-session)")
	}

	// A missing or malformed mapping document is fatal: nothing downstream
	// can classify without it.
	cache := mappings.NewCache(cfg.Resources.MappingsFile, cfg.Mappings.Provider, cfg.Mappings.Platform)
	doc, err := cache.Get()
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load mapping document")
	}

	allTopics, err := topics.Load(cfg.Resources.TopicsDir)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load topics")
	}
	selected := allTopics
	if *topicTitles != "" {
		selected = topics.Select(allTopics, strings.Split(*topicTitles, ","))
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	ctx := context.Background()
	sessionRepo := repository.NewSessionRepository(db)
	session, err := sessionRepo.GetByID(ctx, *sessionID)
	if err != nil {
		appLogger.WithError(err).WithField(logger.FieldSessionID, *sessionID).Fatal("Failed to load session")
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldSessionID: session.ID,
		"listings":            len(session.Listings),
		"topics":              len(selected),
	}).Info("Starting processing")

	processor := pipeline.New(session, selected, doc, appLogger)
	outcome := processor.Process()
	report := processor.Report()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to serialize report")
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			appLogger.WithError(err).Fatal("Failed to write report")
		}
		appLogger.WithField("path", *outPath).Info("Report written")
	} else {
		os.Stdout.Write(append(data, '\n'))
	}

	if !outcome.OK() {
		appLogger.WithField("reason", outcome.FailureReason()).Fatal("Processing failed")
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldSessionID:  session.ID,
		logger.FieldDurationMs: outcome.Duration().Milliseconds(),
	}).Info("Processing completed")
}
