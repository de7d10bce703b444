package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/moisesmmele/market-analysis/internal/domain"
	"github.com/moisesmmele/market-analysis/internal/mappings"
)

// Factory builds canonical listings from raw provider records using the
// resolved mapping document. The set of fields it populates comes from the
// explicit field registry on the Listing type, not from the record.
type Factory struct {
	doc *mappings.Document
}

// NewFactory creates a factory bound to a resolved mapping document.
func NewFactory(doc *mappings.Document) *Factory {
	return &Factory{doc: doc}
}

// Create maps one raw JSON record into a canonical Listing. For every
// registered canonical field: resolve the provider's raw field name (skip the
// field when the provider does not declare it), read the raw value (skip when
// absent), then translate it through the platform value table when one exists
// for the field — the first matching variant wins, no match keeps the raw
// value. The returned listing always carries the supplied id.
func (f *Factory) Create(listingID, rawJSON string) (*domain.Listing, error) {
	if f.doc == nil {
		return nil, fmt.Errorf("no mapping document available")
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(rawJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to parse raw listing %s: %w", listingID, err)
	}

	listing := &domain.Listing{ID: listingID}

	for _, canonicalField := range domain.ListingFields {
		providerField, ok := f.doc.Provider.Fields[canonicalField]
		if !ok || providerField == "" {
			continue
		}

		raw, ok := record[providerField]
		if !ok || raw == nil {
			continue
		}

		value := stringify(raw)

		// platform-specific value translation, first variant match wins
		if table, ok := f.doc.Platform[canonicalField]; ok {
			value = table.Translate(value)
		}

		listing.SetField(canonicalField, value)
	}

	return listing, nil
}

// stringify renders a decoded JSON scalar the way it appeared in the record.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
