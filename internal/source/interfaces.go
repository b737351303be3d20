package source

import (
	"context"
	"repopulse/internal/models"
)

// MetricSource is the capability boundary over the hosting platform. Every
// operation reports failure as an unavailable result instead of an error.
type MetricSource interface {
	ListRepositories(ctx context.Context, archived bool) models.Result[[]models.RepositoryRef]
	CommitCount(ctx context.Context, repo string, month models.MonthKey) models.Result[int]
	PullRequestsClosed(ctx context.Context, repo string, month models.MonthKey) models.Result[int]
	IssuesResolved(ctx context.Context, repo string, month models.MonthKey) models.Result[int]
	MilestonesCompleted(ctx context.Context, repo string, month models.MonthKey) models.Result[int]
	CodeChurn(ctx context.Context, repo string, month models.MonthKey) models.Result[models.Churn]
	CommentVolume(ctx context.Context, repo string, month models.MonthKey) models.Result[int]
	RepositoryLink(fullName string) string
}

// Limiter paces requests against the platform's rate policy.
type Limiter interface {
	Wait(ctx context.Context) error
}
