package scraper

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

// Record is one raw provider record as returned by a source, before any
// canonical mapping.
type Record struct {
	ExternalID string          // provider-side id when the payload carries one
	RawJSON    json.RawMessage // untouched provider payload
}

// Batch is the deduplicated result of one scrape run plus the session
// metadata describing how it was obtained.
type Batch struct {
	Records []Record
	Meta    map[string]interface{}
}

// Query describes one scrape run.
type Query struct {
	Terms    []string
	Location string
	Country  string
	Limit    int // results wanted per term
}

// Source defines the interface for job listing sources.
type Source interface {
	// GetSourceID returns the unique identifier for this source.
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	GetDisplayName() string

	// Scrape fetches listings for every search term of the query and returns
	// a single deduplicated batch. Implementations may fetch terms in
	// parallel but must not deliver duplicates.
	Scrape(ctx context.Context, query Query) (*Batch, error)
}

// Dedupe removes duplicate records, keyed by external id when present and by
// a payload fingerprint otherwise. Order of first occurrence is preserved.
func Dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))

	for _, record := range records {
		key := record.ExternalID
		if key == "" {
			key = fingerprint(record.RawJSON)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, record)
	}
	return out
}

func fingerprint(data []byte) string {
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:])
}
