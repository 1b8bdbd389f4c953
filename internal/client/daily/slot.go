package daily

import (
	"context"
	"errors"
	"fmt"
)

// ErrSlotLocked means the server has told us spinning is over for today.
var ErrSlotLocked = errors.New("slot spin locked until the next UTC reset")

// CanSpin reports whether a spin attempt is currently allowed. The client
// stays permissive until the server explicitly says otherwise; the server
// remains the authority and rejects exhausted spins regardless.
func (e *Engine) CanSpin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.slotLocked
}

func (e *Engine) setSlotLocked(locked bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.slotLocked = locked
}

// Spin runs one slot spin. Losing spins leave the slot open for another
// attempt; a winning spin refreshes the summary and locks further spins
// only when the server says so.
func (e *Engine) Spin(ctx context.Context) (*Outcome, error) {
	if !e.CanSpin() {
		return nil, ErrSlotLocked
	}
	if err := e.begin(kindSlot); err != nil {
		return nil, err
	}
	defer e.end(kindSlot)

	res, err := e.api.SpinSlot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to spin: %w", err)
	}
	if !res.Ok {
		reason := res.Error
		if reason == "" {
			reason = "slot_spin_failed"
		}
		if res.CanSpin != nil && !*res.CanSpin {
			e.setSlotLocked(true)
		}
		return nil, errors.New(reason)
	}

	if res.CanSpin != nil {
		e.setSlotLocked(!*res.CanSpin)
	}

	win := res.RewardEP > 0
	out := &Outcome{
		Kind:    kindSlot,
		Granted: res.RewardEP,
		SlotRow: res.Result,
		SlotWin: win,
	}
	if win {
		out.Message = fmt.Sprintf("Congratulations! +%d EP has been added to your account.", res.RewardEP)
		if _, err := e.summary.Refresh(ctx); err != nil {
			e.log.Warn(ctx, "summary refresh after spin failed", "error", err)
		}
	}
	return out, nil
}

// SlotStatus asks the server whether spinning is currently allowed and
// adopts its answer.
func (e *Engine) SlotStatus(ctx context.Context) (bool, string, error) {
	res, err := e.api.GetSlotStatus(ctx)
	if err != nil {
		return e.CanSpin(), "", fmt.Errorf("failed to get slot status: %w", err)
	}
	e.setSlotLocked(!res.CanSpin)
	return res.CanSpin, res.NextResetUTC, nil
}
