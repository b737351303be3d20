package services

import (
	"math"
	"repopulse/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 0.2, PercentChange(Pair{Current: 120, Previous: 100}), 1e-9)
	assert.InDelta(t, -0.5, PercentChange(Pair{Current: 50, Previous: 100}), 1e-9)
	assert.Equal(t, 0.0, PercentChange(Pair{Current: 10, Previous: 0}))
	assert.Equal(t, 0.0, PercentChange(Pair{Current: 10, Previous: -5}))
}

func TestScore_CommitsOnly(t *testing.T) {
	current := models.MetricSnapshot{Commits: models.Available(120)}
	previous := models.MetricSnapshot{Commits: models.Available(100)}

	score := Score(Pairs(current, previous))
	assert.InDelta(t, 0.04, score, 1e-9)
	assert.Equal(t, models.LabelMaintaining, Classify(score))
}

func TestScore_ZeroPreviousMonth(t *testing.T) {
	current := models.MetricSnapshot{
		Commits:             models.Available(50),
		PullRequestsClosed:  models.Available(4),
		IssuesResolved:      models.Available(9),
		MilestonesCompleted: models.Available(1),
		CodeChurn:           models.Available(models.Churn{Added: 300, Removed: 20}),
		CommunityEngagement: models.Available(40),
	}
	previous := models.MetricSnapshot{
		Commits:             models.Available(0),
		PullRequestsClosed:  models.Available(0),
		IssuesResolved:      models.Available(0),
		MilestonesCompleted: models.Available(0),
		CodeChurn:           models.Available(models.Churn{}),
		CommunityEngagement: models.Available(0),
	}

	score := Score(Pairs(current, previous))
	assert.Equal(t, 0.0, score)
	assert.Equal(t, models.LabelPlateauing, Classify(score))
}

func TestScore_UnavailableCountsAsZero(t *testing.T) {
	current := models.MetricSnapshot{
		Commits:            models.Unavailable[int](),
		PullRequestsClosed: models.Available(30),
	}
	previous := models.MetricSnapshot{
		Commits:            models.Available(100),
		PullRequestsClosed: models.Available(20),
	}

	// commits -100% * 0.20, pull requests +50% * 0.15
	assert.InDelta(t, -0.2+0.075, Score(Pairs(current, previous)), 1e-9)
}

func TestScore_ChurnUsesNetChange(t *testing.T) {
	current := models.MetricSnapshot{CodeChurn: models.Available(models.Churn{Added: 400, Removed: 100})}
	previous := models.MetricSnapshot{CodeChurn: models.Available(models.Churn{Added: 150, Removed: 50})}

	pairs := Pairs(current, previous)
	assert.Equal(t, Pair{Current: 300, Previous: 100}, pairs[MetricCodeChurn])
	assert.InDelta(t, 0.2, Score(pairs), 1e-9)
}

func TestScore_NegativePreviousChurnContributesNothing(t *testing.T) {
	current := models.MetricSnapshot{CodeChurn: models.Available(models.Churn{Added: 10, Removed: 0})}
	previous := models.MetricSnapshot{CodeChurn: models.Available(models.Churn{Added: 0, Removed: 80})}

	assert.Equal(t, 0.0, Score(Pairs(current, previous)))
}

func TestScore_IgnoresUnknownMetrics(t *testing.T) {
	pairs := map[string]Pair{
		MetricCommits: {Current: 120, Previous: 100},
		"stars":       {Current: 1000, Previous: 1},
	}
	assert.InDelta(t, 0.04, Score(pairs), 1e-9)
}

func TestScore_NotClamped(t *testing.T) {
	pairs := map[string]Pair{MetricMilestones: {Current: 50, Previous: 1}}
	assert.InDelta(t, 9.8, Score(pairs), 1e-9)
}

func TestWeightsSumToHundred(t *testing.T) {
	total := 0.0
	for _, w := range Weights {
		total += w
	}
	assert.Equal(t, 100.0, total)
	assert.Len(t, Weights, models.SnapshotMetrics)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Label
	}{
		{1.5, models.LabelAccelerating},
		{0.3000001, models.LabelAccelerating},
		{0.30, models.LabelConsolidating},
		{0.11, models.LabelConsolidating},
		{0.10, models.LabelMaintaining},
		{0.04, models.LabelMaintaining},
		{0.0, models.LabelPlateauing},
		{-0.05, models.LabelPlateauing},
		{-0.10, models.LabelDeclining},
		{-0.29, models.LabelDeclining},
		{-0.30, models.LabelCrisis},
		{-4, models.LabelCrisis},
		{math.Inf(1), models.LabelAccelerating},
		{math.Inf(-1), models.LabelCrisis},
		{math.NaN(), models.LabelDataInsufficient},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.score), "score %v", c.score)
	}
}

func TestScore_StableAcrossCalls(t *testing.T) {
	current := models.MetricSnapshot{
		Commits:            models.Available(15),
		PullRequestsClosed: models.Available(20),
		CodeChurn:          models.Available(models.Churn{Added: 15}),
	}
	previous := models.MetricSnapshot{
		Commits:            models.Available(10),
		PullRequestsClosed: models.Available(10),
		CodeChurn:          models.Available(models.Churn{Added: 10}),
	}

	first := Score(Pairs(current, previous))
	assert.InDelta(t, 0.30, first, 1e-9)
	for i := 0; i < 500; i++ {
		score := Score(Pairs(current, previous))
		require.Equal(t, first, score)
		require.Equal(t, Classify(first), Classify(score))
	}
}
