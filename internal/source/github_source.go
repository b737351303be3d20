package source

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/go-github/v62/github"
	"net/http"
	"net/url"
	"repopulse/internal/models"
	"repopulse/internal/providers"
	"repopulse/internal/structures"
	"strings"
	"sync"
)

// PlaceholderToken is sent when no credential is configured. GitHub rejects
// it, so every call degrades to an unavailable result instead of failing fast.
const PlaceholderToken = "invalid-token-not-configured"

const detailPageSize = 100

const (
	opListRepositories = "list_repositories"
	opCommits          = "commits"
	opCommitStats      = "commit_stats"
	opPullRequests     = "pull_requests"
	opIssues           = "issues_resolved"
	opMilestones       = "milestones"
	opComments         = "comments"
)

var (
	errMalformedName = errors.New("repository name must be owner/name")
	errPageLimit     = errors.New("listing exceeds the page limit")
)

type GitHubSource struct {
	client   *github.Client
	org      string
	htmlURL  string
	pageSize int
	maxPages int
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	// last commit listing, for months too large for the cache
	listingMu  sync.Mutex
	listingKey string
	listing    []string
}

func NewGitHubSource(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (MetricSource, error) {
	token := conf.GitHub.Token
	if token == "" {
		logger.Warnf(providers.TypeSource, "GITHUB_TOKEN is not set, requests will carry a placeholder credential")
		token = PlaceholderToken
	}

	baseURL := conf.GitHub.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	endpoint, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL: %w", err)
	}

	client := github.NewClient(&http.Client{Timeout: conf.GitHub.Timeout}).WithAuthToken(token)
	client.BaseURL = endpoint

	return &GitHubSource{
		client:   client,
		org:      conf.GitHub.Organization,
		htmlURL:  strings.TrimSuffix(conf.GitHub.HTMLURL, "/"),
		pageSize: conf.GitHub.PageSize,
		maxPages: conf.GitHub.MaxPages,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

func (g *GitHubSource) RepositoryLink(fullName string) string {
	return g.htmlURL + "/" + fullName
}

func (g *GitHubSource) ListRepositories(ctx context.Context, archived bool) models.Result[[]models.RepositoryRef] {
	query := fmt.Sprintf("org:%s archived:%t", g.org, archived)
	opts := &github.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: g.pageSize},
	}

	found, _, err := g.client.Search.Repositories(ctx, query, opts)
	if err != nil {
		g.failed(opListRepositories, g.org, "", err)
		return models.Unavailable[[]models.RepositoryRef]()
	}
	g.metrics.IncSourceCalls(opListRepositories, true)

	refs := make([]models.RepositoryRef, 0, len(found.Repositories))
	for _, r := range found.Repositories {
		if r.GetFullName() == "" {
			continue
		}
		last := r.GetPushedAt().Time
		if last.IsZero() {
			last = r.GetUpdatedAt().Time
		}
		refs = append(refs, models.RepositoryRef{
			FullName:     r.GetFullName(),
			LastActivity: last,
			Archived:     r.GetArchived(),
		})
	}
	return models.Available(refs)
}

func (g *GitHubSource) CommitCount(ctx context.Context, repo string, month models.MonthKey) models.Result[int] {
	shas, ok := g.commitSHAs(ctx, repo, month)
	if !ok {
		return models.Unavailable[int]()
	}
	return models.Available(len(shas))
}

func (g *GitHubSource) CodeChurn(ctx context.Context, repo string, month models.MonthKey) models.Result[models.Churn] {
	shas, ok := g.commitSHAs(ctx, repo, month)
	if !ok {
		return models.Unavailable[models.Churn]()
	}

	var total models.Churn
	for _, sha := range shas {
		c, ok := g.commitStats(ctx, repo, sha)
		if !ok {
			return models.Unavailable[models.Churn]()
		}
		total.Added += c.Added
		total.Removed += c.Removed
	}
	return models.Available(total)
}

func (g *GitHubSource) PullRequestsClosed(ctx context.Context, repo string, month models.MonthKey) models.Result[int] {
	query := fmt.Sprintf("repo:%s is:pr closed:%s..%s", repo, month.FirstDay(), month.LastDay())
	return g.searchCount(ctx, opPullRequests, repo, month, query)
}

func (g *GitHubSource) IssuesResolved(ctx context.Context, repo string, month models.MonthKey) models.Result[int] {
	query := fmt.Sprintf("repo:%s is:issue closed:%s..%s", repo, month.FirstDay(), month.LastDay())
	return g.searchCount(ctx, opIssues, repo, month, query)
}

func (g *GitHubSource) MilestonesCompleted(ctx context.Context, repo string, month models.MonthKey) models.Result[int] {
	owner, name, err := splitName(repo)
	if err != nil {
		g.failed(opMilestones, repo, month.String(), err)
		return models.Unavailable[int]()
	}

	opts := &github.MilestoneListOptions{
		State:       "closed",
		ListOptions: github.ListOptions{PerPage: detailPageSize},
	}
	count := 0
	for page := 1; ; page++ {
		milestones, resp, err := g.client.Issues.ListMilestones(ctx, owner, name, opts)
		if err != nil {
			g.failed(opMilestones, repo, month.String(), err)
			return models.Unavailable[int]()
		}
		for _, m := range milestones {
			closed := m.GetClosedAt()
			if !closed.IsZero() && month.Contains(closed.Time) {
				count++
			}
		}
		if resp.NextPage == 0 {
			break
		}
		if page >= g.maxPages {
			g.truncated(opMilestones, repo, month)
			return models.Unavailable[int]()
		}
		opts.Page = resp.NextPage
	}
	g.metrics.IncSourceCalls(opMilestones, true)
	return models.Available(count)
}

// CommentVolume counts repository-wide issue and pull request comments
// created during the month. Listing starts at the first day of the month and
// is sorted by creation, so paging stops once a comment past the month shows up.
// A month that needs more than maxPages pages is unavailable, not capped.
func (g *GitHubSource) CommentVolume(ctx context.Context, repo string, month models.MonthKey) models.Result[int] {
	owner, name, err := splitName(repo)
	if err != nil {
		g.failed(opComments, repo, month.String(), err)
		return models.Unavailable[int]()
	}

	since := month.Start()
	opts := &github.IssueListCommentsOptions{
		Sort:        github.String("created"),
		Direction:   github.String("asc"),
		Since:       &since,
		ListOptions: github.ListOptions{PerPage: detailPageSize},
	}
	count := 0
	for page := 1; ; page++ {
		comments, resp, err := g.client.Issues.ListComments(ctx, owner, name, 0, opts)
		if err != nil {
			g.failed(opComments, repo, month.String(), err)
			return models.Unavailable[int]()
		}
		past := false
		for _, c := range comments {
			created := c.GetCreatedAt().Time
			if month.Contains(created) {
				count++
			} else if created.After(month.End()) {
				past = true
			}
		}
		if past || resp.NextPage == 0 {
			break
		}
		if page >= g.maxPages {
			g.truncated(opComments, repo, month)
			return models.Unavailable[int]()
		}
		opts.Page = resp.NextPage
	}
	g.metrics.IncSourceCalls(opComments, true)
	return models.Available(count)
}

func (g *GitHubSource) searchCount(ctx context.Context, op, repo string, month models.MonthKey, query string) models.Result[int] {
	found, _, err := g.client.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		g.failed(op, repo, month.String(), err)
		return models.Unavailable[int]()
	}
	g.metrics.IncSourceCalls(op, true)
	return models.Available(found.GetTotal())
}

// commitSHAs lists the commits authored in month. The listing is cached so
// that the commit count and the churn of the same month share one fetch.
func (g *GitHubSource) commitSHAs(ctx context.Context, repo string, month models.MonthKey) ([]string, bool) {
	key := "commits:" + repo + ":" + month.String()
	if shas, ok := g.lastListing(key); ok {
		return shas, true
	}
	if shas, ok := providers.GetJSON[[]string](g.cache, key); ok {
		return shas, true
	}

	owner, name, err := splitName(repo)
	if err != nil {
		g.failed(opCommits, repo, month.String(), err)
		return nil, false
	}

	opts := &github.CommitsListOptions{
		Since:       month.Start(),
		Until:       month.End(),
		ListOptions: github.ListOptions{PerPage: detailPageSize},
	}
	shas := make([]string, 0)
	for page := 1; ; page++ {
		commits, resp, err := g.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			g.failed(opCommits, repo, month.String(), err)
			return nil, false
		}
		for _, c := range commits {
			shas = append(shas, c.GetSHA())
		}
		if resp.NextPage == 0 {
			break
		}
		if page >= g.maxPages {
			g.truncated(opCommits, repo, month)
			return nil, false
		}
		opts.Page = resp.NextPage
	}
	g.metrics.IncSourceCalls(opCommits, true)

	g.listingMu.Lock()
	g.listingKey, g.listing = key, shas
	g.listingMu.Unlock()

	providers.SetJSON(g.cache, key, shas)
	return shas, true
}

func (g *GitHubSource) lastListing(key string) ([]string, bool) {
	g.listingMu.Lock()
	defer g.listingMu.Unlock()
	if g.listingKey != key {
		return nil, false
	}
	return g.listing, true
}

func (g *GitHubSource) commitStats(ctx context.Context, repo, sha string) (models.Churn, bool) {
	key := "stats:" + repo + ":" + sha
	if c, ok := providers.GetJSON[models.Churn](g.cache, key); ok {
		return c, true
	}

	owner, name, err := splitName(repo)
	if err != nil {
		g.failed(opCommitStats, repo, sha, err)
		return models.Churn{}, false
	}

	commit, _, err := g.client.Repositories.GetCommit(ctx, owner, name, sha, nil)
	if err != nil {
		g.failed(opCommitStats, repo, sha, err)
		return models.Churn{}, false
	}
	if commit.Stats == nil {
		g.failed(opCommitStats, repo, sha, errors.New("commit payload has no stats"))
		return models.Churn{}, false
	}
	g.metrics.IncSourceCalls(opCommitStats, true)

	c := models.Churn{
		Added:   commit.GetStats().GetAdditions(),
		Removed: commit.GetStats().GetDeletions(),
	}
	providers.SetJSON(g.cache, key, c)
	return c, true
}

func (g *GitHubSource) failed(op, subject, scope string, err error) {
	g.metrics.IncSourceCalls(op, false)
	g.logger.Warnf(providers.TypeSource, "%s unavailable for %s %s: %s", op, subject, scope, err)
}

func (g *GitHubSource) truncated(op, repo string, month models.MonthKey) {
	g.failed(op, repo, month.String(), fmt.Errorf("%w of %d", errPageLimit, g.maxPages))
}

func splitName(fullName string) (string, string, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%q: %w", fullName, errMalformedName)
	}
	return owner, name, nil
}
