package services

import (
	"sync"
	"sync/atomic"
)

// Progress tracks the current pipeline run. It is written by the pipeline
// and read concurrently by the status server and metrics gauges.
type Progress struct {
	processed atomic.Int64
	skipped   atomic.Int64
	pending   atomic.Int64

	mu      sync.RWMutex
	current string
}

func NewProgress() *Progress {
	return &Progress{}
}

func (p *Progress) Processed() int { return int(p.processed.Load()) }
func (p *Progress) Skipped() int   { return int(p.skipped.Load()) }
func (p *Progress) Pending() int   { return int(p.pending.Load()) }

func (p *Progress) Current() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *Progress) start(pending, skipped int) {
	p.processed.Store(0)
	p.pending.Store(int64(pending))
	p.skipped.Store(int64(skipped))
	p.setCurrent("")
}

func (p *Progress) begin(repo string) {
	p.setCurrent(repo)
}

func (p *Progress) done() {
	p.processed.Add(1)
	p.pending.Add(-1)
	p.setCurrent("")
}

func (p *Progress) setCurrent(repo string) {
	p.mu.Lock()
	p.current = repo
	p.mu.Unlock()
}
