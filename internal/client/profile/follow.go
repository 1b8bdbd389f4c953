package profile

import (
	"context"
	"fmt"

	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/common"
)

// FollowStatus maps each social follow task to its completion flag.
type FollowStatus map[string]bool

// FollowStatus returns the per-wallet completion state of the one-time
// social follow tasks.
func (s *Service) FollowStatus(ctx context.Context) (FollowStatus, error) {
	wallet := s.sessions.Wallet(ctx)
	if wallet == "" {
		return nil, common.ErrUnauthorized
	}

	status := make(FollowStatus, len(session.FollowKinds))
	for _, kind := range session.FollowKinds {
		status[kind] = s.sessions.FollowDone(ctx, wallet, kind)
	}
	return status, nil
}

// MarkFollowDone records a completed follow task for the logged-in
// wallet. The flag is one-way and per wallet.
func (s *Service) MarkFollowDone(ctx context.Context, kind string) error {
	wallet := s.sessions.Wallet(ctx)
	if wallet == "" {
		return common.ErrUnauthorized
	}

	valid := false
	for _, k := range session.FollowKinds {
		if k == kind {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown follow task: %s", kind)
	}

	s.sessions.MarkFollowDone(ctx, wallet, kind)
	return nil
}

// AllFollowDone reports whether every follow task is complete; sharing
// the invite link is gated on it.
func (s *Service) AllFollowDone(ctx context.Context) bool {
	wallet := s.sessions.Wallet(ctx)
	if wallet == "" {
		return false
	}
	return s.sessions.AllFollowDone(ctx, wallet)
}
