package models

type Churn struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

func (c Churn) Net() int {
	return c.Added - c.Removed
}

// MetricSnapshot holds the six activity signals of one repository for one month.
type MetricSnapshot struct {
	Repository          string
	Month               MonthKey
	Commits             Result[int]
	PullRequestsClosed  Result[int]
	IssuesResolved      Result[int]
	MilestonesCompleted Result[int]
	CodeChurn           Result[Churn]
	CommunityEngagement Result[int]
}

const SnapshotMetrics = 6

// UnavailableCount returns how many of the six signals could not be fetched.
func (s MetricSnapshot) UnavailableCount() int {
	n := 0
	for _, ok := range []bool{
		s.Commits.Ok,
		s.PullRequestsClosed.Ok,
		s.IssuesResolved.Ok,
		s.MilestonesCompleted.Ok,
		s.CodeChurn.Ok,
		s.CommunityEngagement.Ok,
	} {
		if !ok {
			n++
		}
	}
	return n
}
