package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/moisesmmele/market-analysis/internal/domain"
	"github.com/moisesmmele/market-analysis/internal/logger"
	"github.com/moisesmmele/market-analysis/internal/mappings"
	"github.com/moisesmmele/market-analysis/internal/textproc"
)

// Near-duplicate thresholds over description unigram sets.
const (
	jaccardDuplicate = 0.90 // at or above: duplicate
	jaccardSuspect   = 0.80 // between suspect and duplicate: title tie-break
)

// Processor runs the normalization and classification pipeline over one
// session's listings. Stages execute in a fixed order and the pipeline aborts
// after the first stage failure. A Processor owns its working state and must
// not be shared across goroutines during a Process call.
type Processor struct {
	session *domain.Session
	topics  []domain.Topic
	doc     *mappings.Document
	factory *Factory
	log     *logger.Logger

	listings  map[int]*domain.Listing
	ngrams    map[int]*textproc.NgramBag
	jobLevels map[string]string
	buckets   *Buckets
	metrics   map[string]*domain.Metric
}

// New creates a processor for one session against the given topics and
// resolved mapping document.
func New(session *domain.Session, topics []domain.Topic, doc *mappings.Document, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Processor{
		session: session,
		topics:  topics,
		doc:     doc,
		factory: NewFactory(doc),
		log:     log.WithField(logger.FieldComponent, "pipeline"),
		metrics: make(map[string]*domain.Metric),
	}
}

// Process runs every stage in order and returns the overall outcome. The
// first failed stage aborts the rest; its reason is carried on the returned
// metric. Per-stage metrics remain available via Metrics().
func (p *Processor) Process() *domain.Metric {
	metric := domain.NewMetric("process")

	stages := []func() *domain.Metric{
		p.buildListings,
		p.sanitizeListings,
		p.extractNgrams,
		p.deduplicate,
		p.extractJobLevel,
		p.matchAndCount,
		p.updateTotals,
	}

	for _, stage := range stages {
		stageMetric := stage()
		if !stageMetric.OK() {
			reason := fmt.Sprintf("stage %s failed: %s", stageMetric.Context(), stageMetric.FailureReason())
			p.log.WithFields(logger.Fields{
				logger.FieldStage: stageMetric.Context(),
			}).Error(reason)
			return p.appendMetric(metric.Failure(reason))
		}
	}

	metric.Success()
	metric.AppendInfo("total_stages", len(stages))
	return p.appendMetric(metric)
}

// Metrics returns the per-stage outcome records collected so far.
func (p *Processor) Metrics() map[string]*domain.Metric {
	return p.metrics
}

// buildListings maps every raw listing of the session into a canonical
// listing keyed by its position.
func (p *Processor) buildListings() *domain.Metric {
	metric := domain.NewMetric("build_listings")

	if p.session == nil {
		return p.appendMetric(metric.Failure("no session available"))
	}
	if p.doc == nil {
		return p.appendMetric(metric.Failure("no mapping document available"))
	}

	p.listings = make(map[int]*domain.Listing, len(p.session.Listings))

	processed := 0
	for _, raw := range p.session.Listings {
		listing, err := p.factory.Create(raw.ID, raw.RawJSON)
		if err != nil {
			metric.AppendWarning(fmt.Sprintf("skipping listing at position %d: %v", raw.Position, err))
			continue
		}
		p.listings[raw.Position] = listing
		processed++
	}

	metric.Success()
	metric.AppendInfo("processed", processed)
	metric.AppendInfo("created", len(p.listings))
	return p.appendMetric(metric)
}

// sanitizeListings overwrites every listing's title and description with
// their sanitized form.
func (p *Processor) sanitizeListings() *domain.Metric {
	metric := domain.NewMetric("sanitize_listings")

	if p.listings == nil {
		return p.appendMetric(metric.Failure("no listings available"))
	}

	processed := 0
	for _, listing := range p.listings {
		listing.Title = textproc.Sanitize(listing.Title)
		listing.Description = textproc.Sanitize(listing.Description)
		processed++
	}

	metric.Success()
	metric.AppendInfo("processed", processed)
	return p.appendMetric(metric)
}

// extractNgrams computes the per-listing n-gram bags. Runs strictly after
// sanitizeListings: bags must never be derived from raw text.
func (p *Processor) extractNgrams() *domain.Metric {
	metric := domain.NewMetric("extract_ngrams")

	if p.listings == nil {
		return p.appendMetric(metric.Failure("no listings to extract ngrams for"))
	}

	p.ngrams = make(map[int]*textproc.NgramBag, len(p.listings))

	processed := 0
	for index, listing := range p.listings {
		p.ngrams[index] = textproc.BuildNgramBag(listing.Title, listing.Description)
		processed++
	}

	metric.Success()
	metric.AppendInfo("processed", processed)
	return p.appendMetric(metric)
}

// deduplicate removes near-duplicate listings. The pairwise scan marks
// duplicates into a side set; removal happens only after the scan completes.
// Listings already marked duplicate are skipped in the comparer role so a
// surviving original never gets removed by its own copy.
func (p *Processor) deduplicate() *domain.Metric {
	metric := domain.NewMetric("deduplicate")

	if p.listings == nil {
		return p.appendMetric(metric.Failure("no listings available"))
	}
	if p.ngrams == nil {
		return p.appendMetric(metric.Failure("no ngrams available"))
	}

	indices := p.sortedIndices()
	duplicates := make(map[int]struct{})
	iterations := 0

	for _, indexA := range indices {
		if _, dup := duplicates[indexA]; dup {
			continue
		}
		listingA := p.listings[indexA]
		unigramsA := p.ngrams[indexA].Description.Unigrams

		for _, indexB := range indices {
			if indexA == indexB {
				continue
			}
			if _, dup := duplicates[indexB]; dup {
				continue
			}
			iterations++
			listingB := p.listings[indexB]

			// early detect on shared external id
			if listingA.ExternalID != "" && listingB.ExternalID != "" &&
				listingA.ExternalID == listingB.ExternalID {
				duplicates[indexB] = struct{}{}
				continue
			}

			// early detect on verbatim description
			if listingA.Description == listingB.Description {
				duplicates[indexB] = struct{}{}
				continue
			}

			unigramsB := p.ngrams[indexB].Description.Unigrams

			// empty intersection cannot be a near-duplicate, skip the union
			intersection := unigramsA.IntersectionCount(unigramsB)
			if intersection == 0 {
				continue
			}

			union := unigramsA.Len() + unigramsB.Len() - intersection
			if union == 0 {
				continue
			}

			similarity := float64(intersection) / float64(union)

			if similarity >= jaccardDuplicate {
				duplicates[indexB] = struct{}{}
				continue
			}

			// gray zone: title equality breaks the tie
			if similarity >= jaccardSuspect && listingA.Title == listingB.Title {
				duplicates[indexB] = struct{}{}
			}
		}
	}

	for index := range duplicates {
		delete(p.listings, index)
		delete(p.ngrams, index)
	}

	metric.Success()
	metric.AppendInfo("duplicates", len(duplicates))
	metric.AppendInfo("iterations", iterations)
	metric.AppendInfo("survivors", len(p.listings))
	return p.appendMetric(metric)
}

// extractJobLevel infers each listing's job level from its sanitized title
// tokens. Levels are scanned in reverse declaration order so more senior
// levels win ties; the first matching level stops the scan. Listings without
// a matching token keep their current value.
func (p *Processor) extractJobLevel() *domain.Metric {
	metric := domain.NewMetric("extract_job_level")

	if p.doc == nil {
		return p.appendMetric(metric.Failure("no mappings available"))
	}
	levels := p.doc.Canonical.JobLevels
	if len(levels) == 0 {
		return p.appendMetric(metric.Failure("no job levels available"))
	}
	if p.listings == nil {
		return p.appendMetric(metric.Failure("no listings available"))
	}

	p.jobLevels = make(map[string]string, len(p.listings))

	processed := 0
	mutations := 0
	for _, index := range p.sortedIndices() {
		listing := p.listings[index]

		// default to the mapped value
		p.jobLevels[listing.ID] = listing.JobLevel

		titleTokens := textproc.NewTokenSet(strings.Fields(listing.Title)...)

	scan:
		for i := len(levels) - 1; i >= 0; i-- {
			for _, variant := range levels[i].Variants {
				if titleTokens.Has(variant) {
					p.jobLevels[listing.ID] = levels[i].Name
					mutations++
					break scan
				}
			}
		}
		processed++
	}

	metric.Success()
	metric.AppendInfo("processed", processed)
	metric.AppendInfo("mutations", mutations)
	return p.appendMetric(metric)
}

// matchAndCount regenerates the buckets and counts every listing's topic
// matches into its (topic, job level) cell. A listing with at least one match
// in any topic counts once toward the total bucket.
func (p *Processor) matchAndCount() *domain.Metric {
	metric := domain.NewMetric("match_and_count")

	if bucketsMetric := p.generateBuckets(); !bucketsMetric.OK() {
		return p.appendMetric(metric.Failure("no buckets available"))
	}
	if p.ngrams == nil {
		return p.appendMetric(metric.Failure("no ngrams available"))
	}
	if len(p.topics) == 0 {
		return p.appendMetric(metric.Failure("no topics available"))
	}

	levels := p.doc.Canonical.JobLevels
	processed := 0
	iterations := 0

	for _, index := range p.sortedIndices() {
		listing := p.listings[index]
		bag := p.ngrams[index]
		if bag == nil || bag.Ngrams.Len() == 0 {
			metric.AppendWarning(fmt.Sprintf("no ngrams available for listing %s", listing.ID))
			continue
		}

		matches := 0
		for _, topic := range p.topics {
			iterations++
			matchedTerms := textproc.FindMatches(bag.Ngrams, topic.Terms)
			if matchedTerms.Len() == 0 {
				continue
			}
			matches++

			level := p.jobLevels[listing.ID]
			if !levels.Contains(level) {
				metric.AppendWarning(fmt.Sprintf("listing %s has no canonical job level (got %q)", listing.ID, level))
				continue
			}

			cell := p.buckets.Topics[topic.Title].PerLevel[level]
			cell.ListingsCounter++
			cell.MatchesCounter.Update(matchedTerms)
		}

		if matches == 0 {
			metric.AppendWarning(fmt.Sprintf("no matches for listing %s", listing.ID))
			continue
		}

		p.buckets.Total.ListingsCounter++
		processed++
	}

	metric.Success()
	metric.AppendInfo("processed", processed)
	metric.AppendInfo("iterations", iterations)
	return p.appendMetric(metric)
}

// generateBuckets creates fresh buckets for the current topic set and
// job-level hierarchy.
func (p *Processor) generateBuckets() *domain.Metric {
	metric := domain.NewMetric("generate_buckets")

	if p.doc == nil {
		return p.appendMetric(metric.Failure("no mappings available"))
	}
	levels := p.doc.Canonical.JobLevels
	if len(levels) == 0 {
		return p.appendMetric(metric.Failure("no job levels available"))
	}

	p.buckets = newBuckets(p.topics, levels)

	metric.Success()
	metric.AppendInfo("cells", len(p.topics)*len(levels))
	return p.appendMetric(metric)
}

// updateTotals rolls per-level counts up into per-topic totals and per-topic
// totals into the grand total: listing counters sum, match counters merge.
func (p *Processor) updateTotals() *domain.Metric {
	metric := domain.NewMetric("update_totals")

	if p.buckets == nil {
		return p.appendMetric(metric.Failure("no buckets available"))
	}

	levelNames := p.doc.Canonical.JobLevels.Names()
	processed := 0
	for _, topic := range p.topics {
		topicBuckets := p.buckets.Topics[topic.Title]
		for _, level := range levelNames {
			cell := topicBuckets.PerLevel[level]
			topicBuckets.ListingsCounter += cell.ListingsCounter
			topicBuckets.MatchesCounter.Merge(cell.MatchesCounter)
			processed++
		}
		p.buckets.Total.MatchesCounter.Merge(topicBuckets.MatchesCounter)
	}

	metric.Success()
	metric.AppendInfo("processed", processed)
	return p.appendMetric(metric)
}

// sortedIndices returns the surviving listing positions in ascending order so
// every scan is deterministic.
func (p *Processor) sortedIndices() []int {
	indices := make([]int, 0, len(p.listings))
	for index := range p.listings {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}

// appendMetric stores the metric under its stage name and logs the outcome.
func (p *Processor) appendMetric(metric *domain.Metric) *domain.Metric {
	p.metrics[metric.Context()] = metric

	entry := p.log.WithFields(logger.Fields{
		logger.FieldStage:      metric.Context(),
		logger.FieldStatus:     metric.OK(),
		logger.FieldDurationMs: metric.Duration().Milliseconds(),
	})
	if metric.OK() {
		entry.Debug("stage finished")
	} else {
		entry.WithField("reason", metric.FailureReason()).Warn("stage failed")
	}
	return metric
}
