package source

import (
	"context"
	"repopulse/internal/models"
)

// Collect fetches the six activity signals of one repository-month as a
// single batch. The caller is responsible for pacing consecutive batches.
func Collect(ctx context.Context, src MetricSource, repo string, month models.MonthKey) models.MetricSnapshot {
	return models.MetricSnapshot{
		Repository:          repo,
		Month:               month,
		Commits:             src.CommitCount(ctx, repo, month),
		PullRequestsClosed:  src.PullRequestsClosed(ctx, repo, month),
		IssuesResolved:      src.IssuesResolved(ctx, repo, month),
		MilestonesCompleted: src.MilestonesCompleted(ctx, repo, month),
		CodeChurn:           src.CodeChurn(ctx, repo, month),
		CommunityEngagement: src.CommentVolume(ctx, repo, month),
	}
}
