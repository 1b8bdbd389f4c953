package api

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Projection is the read-only view over the latest DailySummary snapshot.
// Every refresh replaces the snapshot wholesale; there is no merge logic,
// so all derived flags are computed from one consistent server state.
// Concurrent refresh requests collapse into a single backend call.
type Projection struct {
	client Client

	mu       sync.RWMutex
	snapshot *DailySummary

	group singleflight.Group
}

func NewProjection(client Client) *Projection {
	return &Projection{client: client}
}

// Current returns the latest snapshot, or nil when none has been fetched.
// The returned value must be treated as immutable.
func (p *Projection) Current() *DailySummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Refresh fetches a fresh summary and replaces the snapshot. Concurrent
// callers share one in-flight fetch and all observe its result.
func (p *Projection) Refresh(ctx context.Context) (*DailySummary, error) {
	v, err, _ := p.group.Do("summary", func() (any, error) {
		s, err := p.client.GetSummary(ctx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.snapshot = s
		p.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DailySummary), nil
}

// Clear drops the snapshot (logout); the next Refresh starts from scratch.
func (p *Projection) Clear() {
	p.mu.Lock()
	p.snapshot = nil
	p.mu.Unlock()
}
