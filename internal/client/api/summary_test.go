package api

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient implements Client for projection tests; only GetSummary is
// used.
type fakeClient struct {
	Client

	mu      sync.Mutex
	calls   atomic.Int32
	summary *DailySummary
	err     error
	block   chan struct{}
}

func (f *fakeClient) GetSummary(ctx context.Context) (*DailySummary, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s := *f.summary
	return &s, nil
}

func TestProjection_RefreshReplacesSnapshotWholesale(t *testing.T) {
	fc := &fakeClient{summary: &DailySummary{EP: 10, DailyTapLast: "2024-01-01"}}
	p := NewProjection(fc)

	require.Nil(t, p.Current())

	s1, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), s1.EP)

	fc.mu.Lock()
	fc.summary = &DailySummary{EP: 35} // note: no DailyTapLast
	fc.mu.Unlock()

	s2, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(35), s2.EP)
	assert.Empty(t, p.Current().DailyTapLast, "stale fields must not survive a refresh")
}

func TestProjection_RefreshErrorKeepsOldSnapshot(t *testing.T) {
	fc := &fakeClient{summary: &DailySummary{EP: 10}}
	p := NewProjection(fc)

	_, err := p.Refresh(context.Background())
	require.NoError(t, err)

	fc.mu.Lock()
	fc.err = errors.New("backend down")
	fc.mu.Unlock()

	_, err = p.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, int64(10), p.Current().EP, "failed refresh must not wipe the snapshot")
}

func TestProjection_ConcurrentRefreshesShareOneFetch(t *testing.T) {
	fc := &fakeClient{summary: &DailySummary{EP: 7}, block: make(chan struct{})}
	p := NewProjection(fc)

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = p.Refresh(context.Background())
		}()
	}

	// let the goroutines pile onto the single in-flight fetch
	for fc.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	close(fc.block)
	wg.Wait()

	assert.Equal(t, int32(1), fc.calls.Load(), "concurrent refreshes must collapse into one call")
	assert.Equal(t, int64(7), p.Current().EP)
}

func TestProjection_Clear(t *testing.T) {
	fc := &fakeClient{summary: &DailySummary{EP: 1}}
	p := NewProjection(fc)

	_, err := p.Refresh(context.Background())
	require.NoError(t, err)
	p.Clear()
	assert.Nil(t, p.Current())
}
