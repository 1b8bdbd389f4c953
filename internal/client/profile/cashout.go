package profile

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidAmount means the withdrawal amount is not a positive number.
var ErrInvalidAmount = errors.New("invalid withdrawal amount")

// Withdraw requests a cashout of Career Cash. Only basic numeric sanity
// is checked client-side; limits (minimum 10, maximum 500, daily cap)
// are enforced by the server and surface through its error codes. The
// returned signature, when present, is the on-chain payout transfer.
func (s *Service) Withdraw(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	res, err := s.api.Withdraw(ctx, amount)
	if err != nil {
		return "", fmt.Errorf("withdrawal failed: %w", err)
	}
	if !res.Ok {
		reason := res.Error
		if reason == "" {
			reason = "unknown"
		}
		return "", errors.New(reason)
	}

	if _, err := s.summary.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "summary refresh after withdrawal failed", "error", err)
	}
	return res.Signature, nil
}
