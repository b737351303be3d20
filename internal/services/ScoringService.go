package services

import "repopulse/internal/models"

const (
	MetricCommits             = "commits"
	MetricPullRequests        = "pull_requests"
	MetricIssuesResolved      = "issues_resolved"
	MetricMilestones          = "milestones"
	MetricCodeChurn           = "code_churn"
	MetricCommunityEngagement = "community_engagement"
)

// Weights are percentages and sum to 100.
var Weights = map[string]float64{
	MetricCommits:             20,
	MetricPullRequests:        15,
	MetricIssuesResolved:      20,
	MetricMilestones:          20,
	MetricCodeChurn:           10,
	MetricCommunityEngagement: 15,
}

// metricOrder is the summation order of Score; floating-point addition is not associative.
var metricOrder = []string{
	MetricCommits,
	MetricPullRequests,
	MetricIssuesResolved,
	MetricMilestones,
	MetricCodeChurn,
	MetricCommunityEngagement,
}

// Pair holds the values of one metric for two consecutive months.
type Pair struct {
	Current  float64
	Previous float64
}

// Pairs builds the per-metric pairs of two snapshots. Unavailable values
// count as zero; code churn contributes its net line change.
func Pairs(current, previous models.MetricSnapshot) map[string]Pair {
	return map[string]Pair{
		MetricCommits:             intPair(current.Commits, previous.Commits),
		MetricPullRequests:        intPair(current.PullRequestsClosed, previous.PullRequestsClosed),
		MetricIssuesResolved:      intPair(current.IssuesResolved, previous.IssuesResolved),
		MetricMilestones:          intPair(current.MilestonesCompleted, previous.MilestonesCompleted),
		MetricCodeChurn:           {Current: float64(current.CodeChurn.OrZero().Net()), Previous: float64(previous.CodeChurn.OrZero().Net())},
		MetricCommunityEngagement: intPair(current.CommunityEngagement, previous.CommunityEngagement),
	}
}

func intPair(current, previous models.Result[int]) Pair {
	return Pair{Current: float64(current.OrZero()), Previous: float64(previous.OrZero())}
}

// PercentChange is the relative change from Previous to Current, or 0 when
// Previous is not positive.
func PercentChange(p Pair) float64 {
	if p.Previous > 0 {
		return (p.Current - p.Previous) / p.Previous
	}
	return 0
}

// Score is the weighted sum of percent changes. Unknown metric names are
// ignored and the result is not clamped.
func Score(pairs map[string]Pair) float64 {
	score := 0.0
	for _, name := range metricOrder {
		p, ok := pairs[name]
		if !ok {
			continue
		}
		score += PercentChange(p) * Weights[name] / 100
	}
	return score
}

func Classify(score float64) models.Label {
	switch {
	case score > 0.30:
		return models.LabelAccelerating
	case score > 0.10 && score <= 0.30:
		return models.LabelConsolidating
	case score > 0 && score <= 0.10:
		return models.LabelMaintaining
	case score > -0.10 && score <= 0:
		return models.LabelPlateauing
	case score > -0.30 && score <= -0.10:
		return models.LabelDeclining
	case score <= -0.30:
		return models.LabelCrisis
	default:
		return models.LabelDataInsufficient
	}
}
