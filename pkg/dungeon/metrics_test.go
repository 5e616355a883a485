package dungeon

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestGenerationMetrics_RecordAndReport(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGenerationMetrics(reg)

	m.RecordLevelGenerated(50)
	m.RecordLevelGenerated(30)
	m.RecordAutoScumReject()
	m.RecordBoundedLoopAbort()

	report := m.Report()

	assert.Equal(t, int64(2), report.LevelsGenerated)
	assert.Equal(t, int64(1), report.AutoScumRejects)
	assert.Equal(t, int64(1), report.BoundedLoopAborts)
	assert.InDelta(t, 40.0, report.AverageRating, 0.001)
}

func TestFeelingScore_AddsGoodItemBonus(t *testing.T) {
	assert.Equal(t, 20, FeelingScore(20, false))
	assert.Equal(t, 30, FeelingScore(20, true))
}

func TestShouldAutoScum(t *testing.T) {
	assert.True(t, ShouldAutoScum(5, 10))
	assert.False(t, ShouldAutoScum(15, 10))
}
