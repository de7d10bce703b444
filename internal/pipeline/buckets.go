package pipeline

import (
	"github.com/moisesmmele/market-analysis/internal/domain"
	"github.com/moisesmmele/market-analysis/internal/mappings"
	"github.com/moisesmmele/market-analysis/internal/textproc"
)

// Counter counts term matches. It replaces a language-native counting
// collection with an explicit map and merge semantics.
type Counter map[string]int

// Update increments the count of every term in matches by one.
func (c Counter) Update(matches textproc.TokenSet) {
	for term := range matches {
		c[term]++
	}
}

// Merge adds other's counts into c: shared keys sum, new keys are copied.
func (c Counter) Merge(other Counter) {
	for term, count := range other {
		c[term] += count
	}
}

// Bucket is one aggregation cell: a listing count and a term-match counter.
type Bucket struct {
	ListingsCounter int     `json:"listings_counter"`
	MatchesCounter  Counter `json:"matches_counter"`
}

func newBucket() *Bucket {
	return &Bucket{MatchesCounter: make(Counter)}
}

// TopicBuckets holds a topic's rolled-up totals plus one bucket per canonical
// job level.
type TopicBuckets struct {
	ListingsCounter int                `json:"listings_counter"`
	MatchesCounter  Counter            `json:"matches_counter"`
	PerLevel        map[string]*Bucket `json:"per_level"`
}

// Buckets is the full aggregation state for one processing run: one cell per
// (topic, job level) pair plus the synthetic grand total.
type Buckets struct {
	Total  *Bucket                  `json:"total"`
	Topics map[string]*TopicBuckets `json:"topics"`
}

// newBuckets generates fresh buckets for the given topics and job-level
// hierarchy. Level keys are exactly the canonical levels of the hierarchy;
// no bucket exists outside that set.
func newBuckets(topics []domain.Topic, levels mappings.JobLevelHierarchy) *Buckets {
	buckets := &Buckets{
		Total:  newBucket(),
		Topics: make(map[string]*TopicBuckets, len(topics)),
	}

	for _, topic := range topics {
		perLevel := make(map[string]*Bucket, len(levels))
		for _, level := range levels {
			perLevel[level.Name] = newBucket()
		}
		buckets.Topics[topic.Title] = &TopicBuckets{
			MatchesCounter: make(Counter),
			PerLevel:       perLevel,
		}
	}

	return buckets
}
