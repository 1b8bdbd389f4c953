package profile

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/client/repositories/state"
	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/logging"
)

type fakeAPI struct {
	api.Client

	nickRes      *api.ActionResult
	nickErr      error
	gotNickname  string
	withdrawRes  *api.WithdrawResult
	gotAmount    float64
	summaryCalls atomic.Int32
}

func (f *fakeAPI) SetNickname(ctx context.Context, nickname string) (*api.ActionResult, error) {
	f.gotNickname = nickname
	if f.nickErr != nil {
		return nil, f.nickErr
	}
	return f.nickRes, nil
}

func (f *fakeAPI) Withdraw(ctx context.Context, amount float64) (*api.WithdrawResult, error) {
	f.gotAmount = amount
	return f.withdrawRes, nil
}

func (f *fakeAPI) GetSummary(ctx context.Context) (*api.DailySummary, error) {
	f.summaryCalls.Add(1)
	return &api.DailySummary{}, nil
}

func newTestService(backend *fakeAPI) (*Service, *session.Store) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sessions := session.NewStore(state.NewMemoryRepository(), log)
	return NewService(backend, sessions, api.NewProjection(backend), log), sessions
}

func TestSanitizeNickname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@skunk_fan", "skunk_fan"},
		{"@@double", "double"},
		{"  spaced out  ", "spacedout"},
		{"emoji🦨name", "emojiname"},
		{"way_too_long_nickname_here", "way_too_long_ni"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeNickname(tt.in), tt.in)
	}
}

func TestFormatUSDC(t *testing.T) {
	assert.Equal(t, "12.50 USDC", FormatUSDC(12.5))
	assert.Equal(t, "0.00 USDC", FormatUSDC(0))
	assert.Equal(t, "99.99 USDC", FormatUSDC(99.994))
}

func TestIsDailyChampion(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsDailyChampion(nil, now))
	assert.False(t, IsDailyChampion(&api.DailySummary{}, now))
	assert.False(t, IsDailyChampion(&api.DailySummary{DailyChampionUntil: "garbage"}, now))
	assert.False(t, IsDailyChampion(&api.DailySummary{DailyChampionUntil: "2025-03-14T11:00:00Z"}, now))
	assert.True(t, IsDailyChampion(&api.DailySummary{DailyChampionUntil: "2025-03-15T00:00:00Z"}, now))
}

func TestSetNickname(t *testing.T) {
	backend := &fakeAPI{nickRes: &api.ActionResult{Ok: true}}
	svc, _ := newTestService(backend)

	nick, err := svc.SetNickname(context.Background(), "@skunk_fan")
	require.NoError(t, err)
	assert.Equal(t, "skunk_fan", nick)
	assert.Equal(t, "skunk_fan", backend.gotNickname)
	assert.Equal(t, int32(1), backend.summaryCalls.Load())
}

func TestSetNickname_ClientSideValidation(t *testing.T) {
	svc, _ := newTestService(&fakeAPI{})

	_, err := svc.SetNickname(context.Background(), "🦨🦨🦨")
	assert.ErrorIs(t, err, ErrNicknameEmpty)

	_, err = svc.SetNickname(context.Background(), "ab")
	assert.ErrorIs(t, err, ErrNicknameTooShort)
}

func TestSetNickname_ServerRejection(t *testing.T) {
	backend := &fakeAPI{nickRes: &api.ActionResult{Ok: false, Error: "nickname_too_long"}}
	svc, _ := newTestService(backend)

	_, err := svc.SetNickname(context.Background(), "valid_name")
	require.EqualError(t, err, "nickname_too_long")
	assert.Equal(t, int32(0), backend.summaryCalls.Load())
}

func TestWithdraw(t *testing.T) {
	backend := &fakeAPI{withdrawRes: &api.WithdrawResult{Ok: true, Signature: "payout_sig"}}
	svc, _ := newTestService(backend)

	sig, err := svc.Withdraw(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, "payout_sig", sig)
	assert.Equal(t, float64(25), backend.gotAmount)
	assert.Equal(t, int32(1), backend.summaryCalls.Load())
}

func TestWithdraw_InvalidAmount(t *testing.T) {
	svc, _ := newTestService(&fakeAPI{})

	_, err := svc.Withdraw(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Withdraw(context.Background(), -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWithdraw_ServerRejection(t *testing.T) {
	backend := &fakeAPI{withdrawRes: &api.WithdrawResult{Ok: false, Error: "min_withdraw_10"}}
	svc, _ := newTestService(backend)

	_, err := svc.Withdraw(context.Background(), 5)
	require.EqualError(t, err, "min_withdraw_10")
}

func TestFollowTasks(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(&fakeAPI{})

	_, err := svc.FollowStatus(ctx)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	sessions.SetCredentials(ctx, "Wk1xyz", "sess_abc")

	status, err := svc.FollowStatus(ctx)
	require.NoError(t, err)
	assert.Len(t, status, 3)
	assert.False(t, svc.AllFollowDone(ctx))

	require.NoError(t, svc.MarkFollowDone(ctx, "x"))
	require.NoError(t, svc.MarkFollowDone(ctx, "telegram"))
	assert.False(t, svc.AllFollowDone(ctx))
	require.NoError(t, svc.MarkFollowDone(ctx, "instagram"))
	assert.True(t, svc.AllFollowDone(ctx))

	assert.Error(t, svc.MarkFollowDone(ctx, "myspace"))
}

func TestComputeTierProgress(t *testing.T) {
	tests := []struct {
		name     string
		summary  *api.DailySummary
		wantTier string
		wantNext string
		wantLeft int64
	}{
		{"nil summary", nil, "K0", "K1", 1000},
		{"fresh K0", &api.DailySummary{CareerTier: "K0", EP: 0}, "K0", "K1", 1000},
		{"mid K0", &api.DailySummary{CareerTier: "K0", EP: 400}, "K0", "K1", 600},
		{"K1", &api.DailySummary{CareerTier: "K1", EP: 3000}, "K1", "K2", 2000},
		{"K2", &api.DailySummary{CareerTier: "K2", EP: 9000}, "K2", "K3", 1000},
		{"top tier", &api.DailySummary{CareerTier: "K3", EP: 20000}, "K3", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTierProgress(tt.summary)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantNext, got.NextTier)
			assert.Equal(t, tt.wantLeft, got.Remaining)
			assert.GreaterOrEqual(t, got.Progress, 0.0)
			assert.LessOrEqual(t, got.Progress, 1.0)
		})
	}

	// progress math at a known point: 400/1000 into K1
	p := ComputeTierProgress(&api.DailySummary{CareerTier: "K0", EP: 400})
	assert.InDelta(t, 0.4, p.Progress, 1e-9)
}
