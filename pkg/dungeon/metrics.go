package dungeon

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// This file implements spec §4.J step 20 and §9's "rating/feeling"
// quality gate, grounded on pkg/pcg/metrics.go's GenerationMetrics /
// ContentQualityMetrics / QualityReport shape. The new addition over the
// teacher is exposing the same counters through Prometheus, the way
// pkg/pcg/balancer.go and pkg/pcg/metrics.go were clearly headed but
// never wired to github.com/prometheus/client_golang in the teacher
// itself — see SPEC_FULL.md's DOMAIN STACK table.

// GenerationMetrics accumulates counts across repeated generate_cave
// attempts (spec §4.J step 20: "object/monster overflow rejects and
// retries").
type GenerationMetrics struct {
	mu sync.Mutex

	levelsGenerated   int64
	autoScumRejects   int64
	boundedLoopAborts int64
	totalRating       int64

	promLevelsGenerated   prometheus.Counter
	promAutoScumRejects   prometheus.Counter
	promBoundedLoopAborts prometheus.Counter
	promRating            prometheus.Histogram
}

// NewGenerationMetrics constructs a metrics recorder and registers its
// Prometheus collectors against reg (pass a fresh prometheus.NewRegistry()
// in tests to avoid global-registry collisions).
func NewGenerationMetrics(reg prometheus.Registerer) *GenerationMetrics {
	m := &GenerationMetrics{
		promLevelsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dungeon_levels_generated_total",
			Help: "Total number of dungeon levels successfully generated.",
		}),
		promAutoScumRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dungeon_autoscum_rejects_total",
			Help: "Total number of levels rejected by the auto-scum quality gate.",
		}),
		promBoundedLoopAborts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dungeon_bounded_loop_aborts_total",
			Help: "Total number of bounded-loop iteration-cap aborts across all sub-generators.",
		}),
		promRating: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dungeon_level_rating",
			Help:    "Distribution of the feeling/rating score assigned to generated levels.",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.promLevelsGenerated, m.promAutoScumRejects, m.promBoundedLoopAborts, m.promRating)
	}
	return m
}

// RecordLevelGenerated records a successfully published level with its
// final rating score.
func (m *GenerationMetrics) RecordLevelGenerated(rating int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levelsGenerated++
	m.totalRating += int64(rating)
	m.promLevelsGenerated.Inc()
	m.promRating.Observe(float64(rating))
}

// RecordAutoScumReject records a rejection at spec §4.J step 20.
func (m *GenerationMetrics) RecordAutoScumReject() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoScumRejects++
	m.promAutoScumRejects.Inc()
}

// RecordBoundedLoopAbort records a spec §5/§7 bounded-loop abort.
func (m *GenerationMetrics) RecordBoundedLoopAbort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boundedLoopAborts++
	m.promBoundedLoopAborts.Inc()
}

// QualityReport summarizes accumulated metrics.
type QualityReport struct {
	LevelsGenerated   int64
	AutoScumRejects   int64
	BoundedLoopAborts int64
	AverageRating     float64
}

// Report returns a point-in-time snapshot.
func (m *GenerationMetrics) Report() QualityReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	avg := 0.0
	if m.levelsGenerated > 0 {
		avg = float64(m.totalRating) / float64(m.levelsGenerated)
	}
	return QualityReport{
		LevelsGenerated:   m.levelsGenerated,
		AutoScumRejects:   m.autoScumRejects,
		BoundedLoopAborts: m.boundedLoopAborts,
		AverageRating:     avg,
	}
}

// FeelingScore computes the heuristic "rating/feeling" score from
// cumulative sector/room ratings and whether a good item was placed,
// per spec §4.J step 20 and the GLOSSARY's "Rating/feeling" entry.
func FeelingScore(cumulativeRating int, goodItemFlag bool) int {
	score := cumulativeRating
	if goodItemFlag {
		score += 10
	}
	return score
}

// ShouldAutoScum reports whether a level should be rejected and retried
// because its feeling score falls below threshold.
func ShouldAutoScum(score, threshold int) bool {
	return score < threshold
}
