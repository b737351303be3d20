package testutil

import (
	"context"
	"repopulse/internal/models"
	"repopulse/internal/providers"
	"strconv"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu     sync.Mutex
	Logs   []LogEntry
	Closed bool
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu               sync.Mutex
	SourceCalls      map[string]int
	UnavailableRepos int
	Scores           []float64
	Persists         int
	HistoriesTotal   int
	CacheHits        int
	CacheMisses      int
	Requests         map[string]int // "endpoint:status"
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint+":"+strconv.Itoa(status)]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
func (m *MockMetrics) IncSourceCalls(operation string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SourceCalls == nil {
		m.SourceCalls = make(map[string]int)
	}
	key := operation + ":ok"
	if !ok {
		key = operation + ":unavailable"
	}
	m.SourceCalls[key]++
}
func (m *MockMetrics) IncUnavailableRepositories() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnavailableRepos++
}
func (m *MockMetrics) ObserveScore(score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scores = append(m.Scores, score)
}
func (m *MockMetrics) SetHistoriesTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistoriesTotal = count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetricSource implements source.MetricSource from canned per-month data.
// Months missing from a repository's data are reported as unavailable.
type MockMetricSource struct {
	mu           sync.Mutex
	Repositories map[bool][]models.RepositoryRef
	Data         map[string]map[string]MonthData // repo → "YYYY-MM" → data
	Fail         map[string]bool                 // repo → every call unavailable
	Calls        []string                        // "repo@YYYY-MM" per month batch
	// OnCollect runs once per month batch, before any data is returned.
	OnCollect func(repo string, month models.MonthKey)
}

type MonthData struct {
	Commits    int
	PRs        int
	Issues     int
	Milestones int
	Added      int
	Removed    int
	Comments   int
}

func (m *MockMetricSource) ListRepositories(_ context.Context, archived bool) models.Result[[]models.RepositoryRef] {
	m.mu.Lock()
	defer m.mu.Unlock()
	refs, ok := m.Repositories[archived]
	if !ok {
		return models.Unavailable[[]models.RepositoryRef]()
	}
	return models.Available(refs)
}

func (m *MockMetricSource) lookup(repo string, month models.MonthKey) (MonthData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail[repo] {
		return MonthData{}, false
	}
	d, ok := m.Data[repo][month.String()]
	return d, ok
}

func (m *MockMetricSource) CommitCount(_ context.Context, repo string, month models.MonthKey) models.Result[int] {
	m.mu.Lock()
	m.Calls = append(m.Calls, repo+"@"+month.String())
	hook := m.OnCollect
	m.mu.Unlock()
	if hook != nil {
		hook(repo, month)
	}

	d, ok := m.lookup(repo, month)
	if !ok {
		return models.Unavailable[int]()
	}
	return models.Available(d.Commits)
}

func (m *MockMetricSource) PullRequestsClosed(_ context.Context, repo string, month models.MonthKey) models.Result[int] {
	d, ok := m.lookup(repo, month)
	if !ok {
		return models.Unavailable[int]()
	}
	return models.Available(d.PRs)
}

func (m *MockMetricSource) IssuesResolved(_ context.Context, repo string, month models.MonthKey) models.Result[int] {
	d, ok := m.lookup(repo, month)
	if !ok {
		return models.Unavailable[int]()
	}
	return models.Available(d.Issues)
}

func (m *MockMetricSource) MilestonesCompleted(_ context.Context, repo string, month models.MonthKey) models.Result[int] {
	d, ok := m.lookup(repo, month)
	if !ok {
		return models.Unavailable[int]()
	}
	return models.Available(d.Milestones)
}

func (m *MockMetricSource) CodeChurn(_ context.Context, repo string, month models.MonthKey) models.Result[models.Churn] {
	d, ok := m.lookup(repo, month)
	if !ok {
		return models.Unavailable[models.Churn]()
	}
	return models.Available(models.Churn{Added: d.Added, Removed: d.Removed})
}

func (m *MockMetricSource) CommentVolume(_ context.Context, repo string, month models.MonthKey) models.Result[int] {
	d, ok := m.lookup(repo, month)
	if !ok {
		return models.Unavailable[int]()
	}
	return models.Available(d.Comments)
}

func (m *MockMetricSource) RepositoryLink(fullName string) string {
	return "https://github.com/" + fullName
}

// BatchCalls returns the recorded month batches.
func (m *MockMetricSource) BatchCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	copy(out, m.Calls)
	return out
}

// MockLimiter counts waits and never blocks.
type MockLimiter struct {
	mu    sync.Mutex
	Waits int
}

func (m *MockLimiter) Wait(ctx context.Context) error {
	m.mu.Lock()
	m.Waits++
	m.mu.Unlock()
	return ctx.Err()
}
