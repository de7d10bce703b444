package topics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/moisesmmele/market-analysis/internal/domain"
)

// Load reads every *.json topic resource under dir, sorted by filename so the
// topic order is stable across runs.
func Load(dir string) ([]domain.Topic, error) {
	pattern := filepath.Join(dir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob topics dir %q: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no topic resources found in %q", dir)
	}
	sort.Strings(files)

	topics := make([]domain.Topic, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read topic %q: %w", file, err)
		}

		var topic domain.Topic
		if err := json.Unmarshal(data, &topic); err != nil {
			return nil, fmt.Errorf("failed to parse topic %q: %w", file, err)
		}
		if topic.Title == "" {
			return nil, fmt.Errorf("topic %q has no title", file)
		}
		topics = append(topics, topic)
	}

	return topics, nil
}

// Select returns the topics whose titles are in the selection, in load order.
// An empty selection returns all topics.
func Select(all []domain.Topic, titles []string) []domain.Topic {
	if len(titles) == 0 {
		return all
	}

	wanted := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		wanted[title] = struct{}{}
	}

	selected := make([]domain.Topic, 0, len(titles))
	for _, topic := range all {
		if _, ok := wanted[topic.Title]; ok {
			selected = append(selected, topic)
		}
	}
	return selected
}
