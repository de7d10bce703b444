package domain

import (
	"encoding/json"
	"time"
)

// Metric is a structured outcome record for one pipeline stage: timing,
// success/failure, keyed info values and accumulated warnings. Metrics are
// diagnostics only; they carry no classification state.
type Metric struct {
	context    string
	startTime  time.Time
	finishTime time.Time
	duration   time.Duration
	status     bool
	info       map[string]interface{}
	warnings   []string
	meta       map[string]interface{}
}

// NewMetric creates a metric for the given stage context and starts its clock.
func NewMetric(context string) *Metric {
	return &Metric{
		context:   context,
		startTime: time.Now(),
		info:      make(map[string]interface{}),
	}
}

// Context returns the stage name this metric belongs to.
func (m *Metric) Context() string {
	return m.context
}

// Success stamps the finish time and marks the stage as succeeded.
func (m *Metric) Success() *Metric {
	m.finish()
	m.status = true
	return m
}

// Failure stamps the finish time, marks the stage as failed and records the
// reason under the "failure" info key.
func (m *Metric) Failure(reason string) *Metric {
	m.finish()
	m.status = false
	m.info["failure"] = reason
	return m
}

func (m *Metric) finish() {
	m.finishTime = time.Now()
	m.duration = m.finishTime.Sub(m.startTime)
}

// OK reports whether the stage succeeded.
func (m *Metric) OK() bool {
	return m.status
}

// FailureReason returns the recorded failure reason, or "" on success.
func (m *Metric) FailureReason() string {
	if reason, ok := m.info["failure"].(string); ok {
		return reason
	}
	return ""
}

// Duration returns the elapsed time between start and finish.
func (m *Metric) Duration() time.Duration {
	return m.duration
}

// AppendInfo records an arbitrary keyed info value.
func (m *Metric) AppendInfo(key string, value interface{}) *Metric {
	m.info[key] = value
	return m
}

// AppendWarning records a per-item soft warning. Warnings do not affect the
// stage status.
func (m *Metric) AppendWarning(message string) *Metric {
	m.warnings = append(m.warnings, message)
	return m
}

// AppendMeta records an auxiliary keyed value kept apart from info.
func (m *Metric) AppendMeta(key string, value interface{}) *Metric {
	if m.meta == nil {
		m.meta = make(map[string]interface{})
	}
	m.meta[key] = value
	return m
}

// Warnings returns the accumulated warnings.
func (m *Metric) Warnings() []string {
	return m.warnings
}

// Info returns the keyed info value for key, or nil.
func (m *Metric) Info(key string) interface{} {
	return m.info[key]
}

// MarshalJSON serializes the metric for logs and debug dumps.
func (m *Metric) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"context":  m.context,
		"start":    m.startTime.Format(time.RFC3339Nano),
		"finish":   m.finishTime.Format(time.RFC3339Nano),
		"duration": m.duration.String(),
		"status":   m.status,
	}
	if len(m.info) > 0 {
		out["info"] = m.info
	}
	if len(m.warnings) > 0 {
		out["warnings"] = m.warnings
	}
	if len(m.meta) > 0 {
		out["meta"] = m.meta
	}
	return json.Marshal(out)
}
