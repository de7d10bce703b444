package mappings

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JobLevel is one canonical seniority level with the raw title-token variants
// that identify it.
type JobLevel struct {
	Name     string
	Variants []string
}

// JobLevelHierarchy is the ordered job-level vocabulary. Declaration order
// encodes seniority, lowest to highest; the pipeline scans it in reverse so
// more senior levels win ties.
type JobLevelHierarchy []JobLevel

// UnmarshalJSON decodes {"level": ["variant", ...], ...} preserving key
// declaration order, which encoding/json maps would lose.
func (h *JobLevelHierarchy) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("job_level: expected object, got %v", tok)
	}

	levels := JobLevelHierarchy{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("job_level: expected string key, got %v", keyTok)
		}

		var variants []string
		if err := dec.Decode(&variants); err != nil {
			return fmt.Errorf("job_level %q: %w", name, err)
		}
		levels = append(levels, JobLevel{Name: name, Variants: variants})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*h = levels
	return nil
}

// Names returns the level names in declaration order.
func (h JobLevelHierarchy) Names() []string {
	names := make([]string, len(h))
	for i, level := range h {
		names[i] = level.Name
	}
	return names
}

// Contains reports whether name is one of the canonical levels.
func (h JobLevelHierarchy) Contains(name string) bool {
	for _, level := range h {
		if level.Name == name {
			return true
		}
	}
	return false
}

// CanonicalMappings holds the domain-wide vocabularies.
type CanonicalMappings struct {
	JobLevels JobLevelHierarchy
}

// ProviderMappings maps canonical field names to one data source's raw field
// names.
type ProviderMappings struct {
	Fields map[string]string `json:"fields"`
}

// ValueMapping is one canonical value with the raw variants a platform uses
// for it.
type ValueMapping struct {
	Canonical string
	Variants  []string
}

// ValueTable is one platform's ordered value table for a single field.
// Declaration order matters: translation scans the table top to bottom and
// the first variant match wins.
type ValueTable []ValueMapping

// UnmarshalJSON decodes {"canonical": ["variant", ...], ...} preserving key
// declaration order, which encoding/json maps would lose.
func (t *ValueTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("value table: expected object, got %v", tok)
	}

	table := ValueTable{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		canonical, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("value table: expected string key, got %v", keyTok)
		}

		var variants []string
		if err := dec.Decode(&variants); err != nil {
			return fmt.Errorf("value table %q: %w", canonical, err)
		}
		table = append(table, ValueMapping{Canonical: canonical, Variants: variants})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*t = table
	return nil
}

// Translate returns the canonical value whose variant list contains raw,
// scanning in declaration order. No match keeps the raw value.
func (t ValueTable) Translate(raw string) string {
	for _, mapping := range t {
		for _, variant := range mapping.Variants {
			if variant == raw {
				return mapping.Canonical
			}
		}
	}
	return raw
}

// PlatformMappings maps canonical field name -> the platform's ordered value
// table for that field.
type PlatformMappings map[string]ValueTable

// Document is the resolved mapping document for one provider/platform pair.
type Document struct {
	Canonical CanonicalMappings
	Provider  ProviderMappings
	Platform  PlatformMappings
}
