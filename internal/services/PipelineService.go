package services

import (
	"context"
	"repopulse/internal/checkpoint"
	"repopulse/internal/models"
	"repopulse/internal/providers"
	"repopulse/internal/source"
	"repopulse/internal/structures"
	"time"
)

type RunSummary struct {
	Discovered int
	Skipped    int
	Processed  int
	Failed     int
}

type PipelineServiceInterface interface {
	Run(ctx context.Context) (RunSummary, error)
}

type PipelineService struct {
	source          source.MetricSource
	limiter         source.Limiter
	store           checkpoint.StoreInterface
	progress        *Progress
	logger          providers.Logger
	metrics         providers.MetricsProviderInterface
	months          int
	includeArchived bool
	batches         int
}

func NewPipelineService(conf *structures.Config, src source.MetricSource, limiter source.Limiter, store checkpoint.StoreInterface, progress *Progress, logger providers.Logger, metrics providers.MetricsProviderInterface) *PipelineService {
	return &PipelineService{
		source:          src,
		limiter:         limiter,
		store:           store,
		progress:        progress,
		logger:          logger,
		metrics:         metrics,
		months:          conf.Pipeline.Months,
		includeArchived: conf.Pipeline.IncludeArchived,
	}
}

type pendingRepository struct {
	ref  models.RepositoryRef
	link string
}

// Run loads the checkpoint, discovers the organization's repositories and
// scores every repository not yet persisted. Each finished history is
// persisted before the next repository starts. On cancellation the
// repository in flight is dropped and ctx.Err() is returned.
func (p *PipelineService) Run(ctx context.Context) (RunSummary, error) {
	p.batches = 0
	p.store.Load()

	var summary RunSummary
	refs := p.discover(ctx)
	summary.Discovered = len(refs)

	todo := make([]pendingRepository, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		link := p.source.RepositoryLink(ref.FullName)
		if _, dup := seen[link]; dup || p.store.Has(link) {
			summary.Skipped++
			continue
		}
		seen[link] = struct{}{}
		todo = append(todo, pendingRepository{ref: ref, link: link})
	}

	p.progress.start(len(todo), summary.Skipped)
	p.logger.Infof(providers.TypePipeline, "Discovered %d repositories, %d already processed, %d to go", summary.Discovered, summary.Skipped, len(todo))

	for _, repo := range todo {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		p.progress.begin(repo.ref.FullName)
		history, err := p.walk(ctx, repo)
		if err != nil {
			p.logger.Warnf(providers.TypePipeline, "Run interrupted while processing %s, nothing persisted for it", repo.ref.FullName)
			return summary, err
		}

		p.store.Append(history)
		if err := p.store.Persist(); err != nil {
			p.logger.Errorf(providers.TypePipeline, "Unable to persist checkpoint after %s: %s", repo.ref.FullName, err)
			summary.Failed++
		} else {
			summary.Processed++
		}
		p.progress.done()
	}

	p.logger.Infof(providers.TypePipeline, "Run finished: discovered=%d skipped=%d processed=%d failed=%d",
		summary.Discovered, summary.Skipped, summary.Processed, summary.Failed)
	return summary, nil
}

func (p *PipelineService) discover(ctx context.Context) []models.RepositoryRef {
	refs := make([]models.RepositoryRef, 0)

	active := p.source.ListRepositories(ctx, false)
	if !active.Ok {
		p.logger.Warnf(providers.TypePipeline, "Active repository listing unavailable")
	}
	refs = append(refs, active.OrZero()...)

	if p.includeArchived {
		archived := p.source.ListRepositories(ctx, true)
		if !archived.Ok {
			p.logger.Warnf(providers.TypePipeline, "Archived repository listing unavailable")
		}
		refs = append(refs, archived.OrZero()...)
	}
	return refs
}

// walk scores the configured window of months preceding the repository's
// last activity, newest pair first.
func (p *PipelineService) walk(ctx context.Context, repo pendingRepository) (models.RepositoryHealthHistory, error) {
	history := models.RepositoryHealthHistory{
		GithubLink:     repo.link,
		MonthlyMetrics: make([]models.ScoredMonth, 0, p.months),
		FinalStatus:    repo.ref.FinalStatus(),
	}

	reference := repo.ref.LastActivity
	if reference.IsZero() {
		p.logger.Debugf(providers.TypePipeline, "%s has no recorded activity, using the current month", repo.ref.FullName)
		reference = time.Now().UTC()
	}
	months := models.LastNMonths(reference, p.months)
	if len(months) < 2 {
		return history, nil
	}

	last := len(months) - 1
	current, err := p.collect(ctx, repo.ref.FullName, months[last])
	if err != nil {
		return history, err
	}
	empty := current.UnavailableCount() == models.SnapshotMetrics

	for i := last - 1; i >= 0; i-- {
		previous, err := p.collect(ctx, repo.ref.FullName, months[i])
		if err != nil {
			return history, err
		}
		empty = empty && previous.UnavailableCount() == models.SnapshotMetrics

		score := Score(Pairs(current, previous))
		label := Classify(score)
		p.metrics.ObserveScore(score)
		history.MonthlyMetrics = append(history.MonthlyMetrics, models.ScoredMonth{
			Month: months[i+1].Compact(),
			Score: score,
			Label: label,
		})
		current = previous
	}

	if empty {
		p.logger.Warnf(providers.TypePipeline, "No metric was available for %s in any month, recording it anyway", repo.ref.FullName)
		p.metrics.IncUnavailableRepositories()
	}
	p.logger.Debugf(providers.TypePipeline, "Scored %d months of %s", len(history.MonthlyMetrics), repo.ref.FullName)
	return history, nil
}

// collect fetches one month batch, pacing it against the previous batch of
// the run.
func (p *PipelineService) collect(ctx context.Context, repo string, month models.MonthKey) (models.MetricSnapshot, error) {
	if p.batches > 0 {
		if err := p.limiter.Wait(ctx); err != nil {
			return models.MetricSnapshot{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return models.MetricSnapshot{}, err
	}
	p.batches++

	snapshot := source.Collect(ctx, p.source, repo, month)
	if err := ctx.Err(); err != nil {
		return models.MetricSnapshot{}, err
	}
	return snapshot, nil
}
