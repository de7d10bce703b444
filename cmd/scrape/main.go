package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moisesmmele/market-analysis/internal/config"
	"github.com/moisesmmele/market-analysis/internal/domain"
	"github.com/moisesmmele/market-analysis/internal/logger"
	"github.com/moisesmmele/market-analysis/internal/repository"
	"github.com/moisesmmele/market-analysis/internal/scraper"
	"github.com/moisesmmele/market-analysis/internal/scraper/jobsboard"
)

func main() {
	terms := flag.String("terms", "php", "Comma-separated search terms")
	location := flag.String("location", "Brasil", "Location to search in")
	country := flag.String("country", "Brazil", "Country for scraping context")
	count := flag.Int("count", 50, "Number of listings to scrape per term")
	title := flag.String("title", "", "Title for the session")
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
		ServiceName: "market-analysis-scrape",
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	termList := splitTerms(*terms)
	appLogger.WithFields(logger.Fields{
		"terms":    termList,
		"location": *location,
		"count":    *count,
	}).Info("Starting scrape")

	source := jobsboard.NewClient(&jobsboard.Config{
		BaseURL: cfg.Scraper.BaseURL,
		APIKey:  cfg.Scraper.APIKey,
		Site:    cfg.Scraper.Site,
		Timeout: cfg.Scraper.Timeout,
		Workers: cfg.Scraper.Workers,
	}, appLogger)

	ctx := context.Background()

	session := &domain.Session{
		ID:    uuid.New().String(),
		Title: *title,
	}
	if session.Title == "" {
		session.Title = fmt.Sprintf("%s - %s - %s",
			*terms, *location, time.Now().Format("2006-01-02 15:04"))
	}
	session.Start()

	batch, err := source.Scrape(ctx, scraper.Query{
		Terms:    termList,
		Location: *location,
		Country:  *country,
		Limit:    *count,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Scrape failed")
	}

	session.Finish()
	session.Meta = batch.Meta
	session.Listings = make([]domain.RawListing, 0, len(batch.Records))
	for i, record := range batch.Records {
		session.Listings = append(session.Listings, domain.RawListing{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Position:  i,
			RawJSON:   string(record.RawJSON),
		})
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	sessionRepo := repository.NewSessionRepository(db)
	id, err := sessionRepo.Save(ctx, session)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to save session")
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldSessionID: id,
		logger.FieldCount:     len(session.Listings),
	}).Info("Session saved")
}

func splitTerms(raw string) []string {
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
