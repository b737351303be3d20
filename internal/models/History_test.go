package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRef_FinalStatus(t *testing.T) {
	assert.Equal(t, 0.0, RepositoryRef{Archived: true}.FinalStatus())
	assert.Equal(t, 1.0, RepositoryRef{Archived: false}.FinalStatus())
}

func TestRepositoryHealthHistory_JSONFieldNames(t *testing.T) {
	h := RepositoryHealthHistory{
		GithubLink: "https://github.com/apache/kafka",
		MonthlyMetrics: []ScoredMonth{
			{Month: "2403", Score: 0.04, Label: LabelMaintaining},
		},
		FinalStatus: StatusActive,
	}
	data, err := json.Marshal(h)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "https://github.com/apache/kafka", raw["Github_link"])
	assert.Equal(t, float64(1), raw["final_status"])

	months := raw["monthly_metrics"].([]interface{})
	require.Len(t, months, 1)
	first := months[0].(map[string]interface{})
	assert.Equal(t, "2403", first["Month"])
	assert.Equal(t, 0.04, first["Score"])
	assert.Equal(t, float64(4), first["Label"])
}

func TestRepositoryHealthHistory_Latest(t *testing.T) {
	_, ok := RepositoryHealthHistory{}.Latest()
	assert.False(t, ok)

	h := RepositoryHealthHistory{MonthlyMetrics: []ScoredMonth{
		{Month: "2403", Label: LabelCrisis},
		{Month: "2402", Label: LabelAccelerating},
	}}
	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "2403", latest.Month)
}

func TestLabel_Names(t *testing.T) {
	assert.Equal(t, "Accelerating", LabelAccelerating.String())
	assert.Equal(t, "Crisis", LabelCrisis.String())
	assert.Equal(t, "Data Insufficient", LabelDataInsufficient.String())
	assert.Equal(t, "Data Insufficient", Label(42).String())
	assert.Equal(t, "No data available", LabelDataInsufficient.Description())
	assert.NotEqual(t, LabelDeclining.Description(), LabelPlateauing.Description())
}

func TestResult_OrZero(t *testing.T) {
	assert.Equal(t, 7, Available(7).OrZero())
	assert.Equal(t, 0, Unavailable[int]().OrZero())

	r := Result[int]{Value: 9, Ok: false}
	assert.Equal(t, 0, r.OrZero())
	assert.Equal(t, Churn{}, Unavailable[Churn]().OrZero())
}

func TestMetricSnapshot_UnavailableCount(t *testing.T) {
	assert.Equal(t, SnapshotMetrics, MetricSnapshot{}.UnavailableCount())

	s := MetricSnapshot{
		Commits:             Available(3),
		PullRequestsClosed:  Available(0),
		IssuesResolved:      Unavailable[int](),
		MilestonesCompleted: Available(1),
		CodeChurn:           Available(Churn{Added: 10, Removed: 4}),
		CommunityEngagement: Unavailable[int](),
	}
	assert.Equal(t, 2, s.UnavailableCount())
	assert.Equal(t, 6, s.CodeChurn.Value.Net())
}
