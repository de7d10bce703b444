package pipeline

import (
	"time"

	"github.com/moisesmmele/market-analysis/internal/domain"
)

// Report is the serializable outcome of one processing run: the aggregated
// buckets plus the per-stage metrics.
type Report struct {
	SessionID   string                    `json:"session_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Listings    int                       `json:"listings"`
	Buckets     *Buckets                  `json:"buckets,omitempty"`
	Stages      map[string]*domain.Metric `json:"stages"`
}

// Report snapshots the processor state after a Process call.
func (p *Processor) Report() *Report {
	report := &Report{
		GeneratedAt: time.Now(),
		Listings:    len(p.listings),
		Buckets:     p.buckets,
		Stages:      p.metrics,
	}
	if p.session != nil {
		report.SessionID = p.session.ID
	}
	return report
}
