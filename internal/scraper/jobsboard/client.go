package jobsboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/moisesmmele/market-analysis/internal/logger"
	"github.com/moisesmmele/market-analysis/internal/scraper"
)

const (
	SourceID   = "jobsboard"
	SourceName = "Job Board API"
)

// Config holds configuration for the job board API client.
type Config struct {
	BaseURL string
	APIKey  string
	Site    string // upstream site to scrape, e.g. "linkedin"
	Timeout time.Duration
	Workers int // max concurrent term fetches
}

// Client implements the scraper.Source interface against a job scraping HTTP
// API. One worker fetches each search term; the merged result is deduplicated
// before delivery.
type Client struct {
	client  *resty.Client
	site    string
	workers int
	log     *logger.Logger
}

// NewClient creates a job board API client.
func NewClient(cfg *Config, log *logger.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logger.GetDefault()
	}

	return &Client{
		client:  client,
		site:    cfg.Site,
		workers: workers,
		log:     log.WithField(logger.FieldSource, SourceID),
	}
}

// GetSourceID returns the unique identifier for this source.
func (c *Client) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source.
func (c *Client) GetDisplayName() string {
	return SourceName
}

// scrapeRequest is the upstream API request body for one search term.
type scrapeRequest struct {
	SiteName         []string `json:"site_name"`
	SearchTerm       string   `json:"search_term"`
	Location         string   `json:"location,omitempty"`
	Country          string   `json:"country,omitempty"`
	ResultsWanted    int      `json:"results_wanted,omitempty"`
	FetchDescription bool     `json:"linkedin_fetch_description"`
}

type scrapeResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// idProbe extracts the provider id from a raw payload without committing to
// its full shape.
type idProbe struct {
	ID string `json:"id"`
}

// Scrape fetches every term of the query with bounded parallelism and returns
// a single deduplicated batch with session metadata.
func (c *Client) Scrape(ctx context.Context, query scraper.Query) (*Batch, error) {
	if len(query.Terms) == 0 {
		return nil, fmt.Errorf("no search terms given")
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		records []scraper.Record
		errs    []error
	)
	sem := make(chan struct{}, c.workers)

	for _, term := range query.Terms {
		wg.Add(1)
		go func(term string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fetched, err := c.fetchTerm(ctx, term, query)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("term %q: %w", term, err))
				return
			}
			records = append(records, fetched...)
		}(term)
	}
	wg.Wait()

	if len(records) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	for _, err := range errs {
		c.log.WithError(err).Warn("partial scrape failure")
	}

	deduped := scraper.Dedupe(records)
	c.log.WithFields(logger.Fields{
		"terms":   len(query.Terms),
		"fetched": len(records),
		"unique":  len(deduped),
	}).Info("Scrape completed")

	return &Batch{
		Records: deduped,
		Meta: map[string]interface{}{
			"tool":     SourceID,
			"site":     c.site,
			"terms":    query.Terms,
			"location": query.Location,
			"country":  query.Country,
			"count":    len(deduped),
		},
	}, nil
}

func (c *Client) fetchTerm(ctx context.Context, term string, query scraper.Query) ([]scraper.Record, error) {
	body := scrapeRequest{
		SiteName:         []string{c.site},
		SearchTerm:       term,
		Location:         query.Location,
		Country:          query.Country,
		ResultsWanted:    query.Limit,
		FetchDescription: true,
	}

	var out scrapeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/scrape")
	if err != nil {
		return nil, fmt.Errorf("scrape request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("scrape request returned %s", resp.Status())
	}

	records := make([]scraper.Record, 0, len(out.Jobs))
	for _, raw := range out.Jobs {
		var probe idProbe
		_ = json.Unmarshal(raw, &probe)
		records = append(records, scraper.Record{
			ExternalID: probe.ID,
			RawJSON:    raw,
		})
	}
	return records, nil
}

// Batch aliases the boundary type so callers only import this package.
type Batch = scraper.Batch
