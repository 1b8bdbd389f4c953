// Package daily implements the uniform daily claim protocol (tap,
// check-in, kudi push, mini challenge) and the slot spin variant.
//
// Claimed-today state is never tracked locally: it is always derived from
// the backend summary's per-action YYYY-MM-DD day keys against the
// current UTC date, so the UTC midnight reset needs no client timer.
package daily

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/logging"
)

// Kind identifies one daily action.
type Kind string

const (
	KindTap           Kind = "tap"
	KindCheckin       Kind = "checkin"
	KindKudiPush      Kind = "kudi-push"
	KindMiniChallenge Kind = "mini-challenge"

	// kindSlot guards spin requests; it has no claim endpoint.
	kindSlot Kind = "slot"
)

// Kinds lists the claimable daily actions in display order.
var Kinds = []Kind{KindTap, KindCheckin, KindKudiPush, KindMiniChallenge}

// epReward is the fixed EP grant per action. The server credits these
// amounts; the client only uses them for messaging.
var epReward = map[Kind]int64{
	KindTap:           25,
	KindCheckin:       15,
	KindKudiPush:      20,
	KindMiniChallenge: 20,
}

// ErrClaimInFlight means a claim for the same action is still running.
var ErrClaimInFlight = errors.New("claim already in flight")

// ErrUnknownKind means the action name is not a claimable daily action.
var ErrUnknownKind = errors.New("unknown daily action")

// Reward returns the fixed EP amount for a claimable action.
func Reward(k Kind) int64 {
	return epReward[k]
}

// ParseKind resolves a user-supplied action name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, s)
}

// lastClaimKey returns the summary's day key for the action.
func lastClaimKey(s *api.DailySummary, k Kind) string {
	if s == nil {
		return ""
	}
	switch k {
	case KindTap:
		return s.DailyTapLast
	case KindCheckin:
		return s.DailyCheckinLast
	case KindKudiPush:
		return s.DailyKudiPushLast
	case KindMiniChallenge:
		return s.DailyMiniChallengeLast
	case kindSlot:
		return s.DailySlotSpinLast
	}
	return ""
}

// HasClaimedToday reports whether the summary records a claim for the
// action on now's UTC date.
func HasClaimedToday(s *api.DailySummary, k Kind, now time.Time) bool {
	key := lastClaimKey(s, k)
	return key != "" && key == common.DayKeyUTC(now)
}

// Outcome is the result of a successful claim or spin.
type Outcome struct {
	Kind    Kind
	Granted int64
	Message string
	SlotRow []string
	SlotWin bool
}

// Engine serializes claims per action and refetches the summary after
// every accepted claim.
type Engine struct {
	api     api.Client
	summary *api.Projection
	log     logging.Logger

	mu       sync.Mutex
	inFlight map[Kind]bool

	// slotLocked is set only on an explicit server canSpin=false.
	slotLocked bool
}

func NewEngine(apiClient api.Client, summary *api.Projection, log logging.Logger) *Engine {
	return &Engine{
		api:      apiClient,
		summary:  summary,
		log:      log,
		inFlight: make(map[Kind]bool),
	}
}

func (e *Engine) begin(k Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[k] {
		return ErrClaimInFlight
	}
	e.inFlight[k] = true
	return nil
}

func (e *Engine) end(k Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight[k] = false
}

// Claim posts the daily action. A server ok:false answer is returned as
// an error carrying the server's reason; the summary is refreshed only
// after an accepted claim.
func (e *Engine) Claim(ctx context.Context, k Kind) (*Outcome, error) {
	if _, ok := epReward[k]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
	if err := e.begin(k); err != nil {
		return nil, err
	}
	defer e.end(k)

	res, err := e.api.ClaimDaily(ctx, string(k))
	if err != nil {
		return nil, fmt.Errorf("failed to claim %s: %w", k, err)
	}
	if !res.Ok {
		reason := res.Message
		if reason == "" {
			reason = res.Error
		}
		if reason == "" {
			reason = fmt.Sprintf("daily_%s_failed", k)
		}
		return nil, errors.New(reason)
	}

	if _, err := e.summary.Refresh(ctx); err != nil {
		e.log.Warn(ctx, "summary refresh after claim failed", "kind", k, "error", err)
	}

	return &Outcome{
		Kind:    k,
		Granted: epReward[k],
		Message: fmt.Sprintf("+%d EP added!", epReward[k]),
	}, nil
}
