package daily

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudilabs/kudi-client/internal/client/api"
)

func boolPtr(b bool) *bool { return &b }

func TestSpin_UnlimitedUntilWin(t *testing.T) {
	backend := &fakeAPI{
		spinQueue: []*api.SpinResult{
			{Ok: true, Result: []string{"A", "B", "C"}},
			{Ok: true, Result: []string{"B", "B", "A"}},
			{Ok: true, Result: []string{"7", "7", "7"}, RewardEP: 50, CanSpin: boolPtr(false)},
		},
		summary: &api.DailySummary{EP: 50},
	}
	e := newTestEngine(backend)
	ctx := context.Background()

	// losing spins keep the slot open and do not touch the summary
	for i := 0; i < 2; i++ {
		out, err := e.Spin(ctx)
		require.NoError(t, err)
		assert.False(t, out.SlotWin)
		assert.True(t, e.CanSpin())
	}
	assert.Equal(t, int32(0), backend.summaryCalls.Load())

	// the winning spin grants EP, refreshes and honors canSpin=false
	out, err := e.Spin(ctx)
	require.NoError(t, err)
	assert.True(t, out.SlotWin)
	assert.Equal(t, int64(50), out.Granted)
	assert.Equal(t, []string{"7", "7", "7"}, out.SlotRow)
	assert.Equal(t, int32(1), backend.summaryCalls.Load())
	assert.False(t, e.CanSpin())

	_, err = e.Spin(ctx)
	assert.ErrorIs(t, err, ErrSlotLocked)
}

func TestSpin_PermissiveWhenCanSpinAbsent(t *testing.T) {
	backend := &fakeAPI{
		spinQueue: []*api.SpinResult{
			{Ok: true, Result: []string{"7", "7", "7"}, RewardEP: 50},
		},
		summary: &api.DailySummary{EP: 50},
	}
	e := newTestEngine(backend)

	out, err := e.Spin(context.Background())
	require.NoError(t, err)
	assert.True(t, out.SlotWin)
	// no explicit canSpin: stay permissive, the server is the authority
	assert.True(t, e.CanSpin())
}

func TestSpin_RejectedWithCanSpinFalseLocks(t *testing.T) {
	backend := &fakeAPI{
		spinQueue: []*api.SpinResult{
			{Ok: false, Error: "slot_exhausted", CanSpin: boolPtr(false)},
		},
	}
	e := newTestEngine(backend)

	_, err := e.Spin(context.Background())
	require.EqualError(t, err, "slot_exhausted")
	assert.False(t, e.CanSpin())
}

func TestSlotStatus_AdoptsServerAnswer(t *testing.T) {
	backend := &fakeAPI{
		slotStatus: &api.SlotStatus{Ok: true, CanSpin: false, NextResetUTC: "2025-03-15T00:00:00Z"},
	}
	e := newTestEngine(backend)

	canSpin, reset, err := e.SlotStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, canSpin)
	assert.Equal(t, "2025-03-15T00:00:00Z", reset)
	assert.False(t, e.CanSpin())

	backend.slotStatus = &api.SlotStatus{Ok: true, CanSpin: true}
	canSpin, _, err = e.SlotStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, canSpin)
	assert.True(t, e.CanSpin())
}
