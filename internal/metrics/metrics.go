package metrics

import (
	"sync"
	"time"
)

// Metrics tracks counters for one or more pipeline runs. Exposed over the
// optional monitoring endpoint in cmd/newsagent.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	TopicsProcessed     int64
	CandidatesCollected int64
	DuplicatesMerged    int64
	ArticlesFiltered    int64
	ProviderFailures    int64
	ScorerFailures      int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementTopicsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TopicsProcessed++
}

func (m *Metrics) AddCandidatesCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesCollected += int64(n)
}

func (m *Metrics) IncrementDuplicatesMerged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesMerged++
}

func (m *Metrics) IncrementArticlesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFiltered++
}

func (m *Metrics) IncrementProviderFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderFailures++
}

func (m *Metrics) IncrementScorerFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScorerFailures++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"topics_processed":        m.TopicsProcessed,
		"candidates_collected":    m.CandidatesCollected,
		"duplicates_merged":       m.DuplicatesMerged,
		"articles_filtered":       m.ArticlesFiltered,
		"provider_failures":       m.ProviderFailures,
		"scorer_failures":         m.ScorerFailures,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
