package mappings

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// mappingsFile mirrors the raw JSON layout of the mapping document.
type mappingsFile struct {
	Canonical map[string]json.RawMessage  `json:"canonical"`
	Providers map[string]ProviderMappings `json:"providers"`
	Platforms map[string]PlatformMappings `json:"platforms"`
}

// Load reads the mapping document at path and resolves the sections for the
// given provider and platform. Missing file or missing sections are
// configuration errors: nothing downstream can classify without them.
func Load(path, provider, platform string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings file %q: %w", path, err)
	}

	var file mappingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mappings file %q: %w", path, err)
	}

	if len(file.Canonical) == 0 {
		return nil, fmt.Errorf("no canonical mappings in %q", path)
	}

	var canonical CanonicalMappings
	if raw, ok := file.Canonical["job_level"]; ok {
		if err := json.Unmarshal(raw, &canonical.JobLevels); err != nil {
			return nil, fmt.Errorf("invalid canonical job_level in %q: %w", path, err)
		}
	}

	providerMappings, ok := file.Providers[provider]
	if !ok || len(providerMappings.Fields) == 0 {
		return nil, fmt.Errorf("no mappings for provider %q in %q", provider, path)
	}

	platformMappings, ok := file.Platforms[platform]
	if !ok {
		return nil, fmt.Errorf("no mappings for platform %q in %q", platform, path)
	}

	return &Document{
		Canonical: canonical,
		Provider:  providerMappings,
		Platform:  platformMappings,
	}, nil
}

// Cache memoizes one mapping document for the process lifetime. It replaces
// the original's lazily-initialized global: construct it once at startup and
// pass it to whatever needs the document. Safe for concurrent Get calls.
type Cache struct {
	path     string
	provider string
	platform string

	once sync.Once
	doc  *Document
	err  error
}

// NewCache creates a cache that will load the document on first Get.
func NewCache(path, provider, platform string) *Cache {
	return &Cache{path: path, provider: provider, platform: platform}
}

// Get returns the cached document, loading it on first call. The load outcome
// (document or error) is memoized.
func (c *Cache) Get() (*Document, error) {
	c.once.Do(func() {
		c.doc, c.err = Load(c.path, c.provider, c.platform)
	})
	return c.doc, c.err
}
