package models

import "time"

const (
	StatusArchived = 0.0
	StatusActive   = 1.0
)

type RepositoryRef struct {
	FullName     string
	LastActivity time.Time
	Archived     bool
}

func (r RepositoryRef) FinalStatus() float64 {
	if r.Archived {
		return StatusArchived
	}
	return StatusActive
}

type ScoredMonth struct {
	Month string  `json:"Month"`
	Score float64 `json:"Score"`
	Label Label   `json:"Label"`
}

// RepositoryHealthHistory is one persisted checkpoint entry. MonthlyMetrics
// keeps the order in which the walk produced them, newest first.
type RepositoryHealthHistory struct {
	GithubLink     string        `json:"Github_link"`
	MonthlyMetrics []ScoredMonth `json:"monthly_metrics"`
	FinalStatus    float64       `json:"final_status"`
}

// Latest returns the most recently evaluated month, if any.
func (h RepositoryHealthHistory) Latest() (ScoredMonth, bool) {
	if len(h.MonthlyMetrics) == 0 {
		return ScoredMonth{}, false
	}
	return h.MonthlyMetrics[0], true
}
