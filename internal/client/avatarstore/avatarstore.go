// Package avatarstore is the client for the EP-priced avatar shop. The
// catalog is server-defined display data; the interesting part is the
// structured buy failures: SOLD_OUT and INSUFFICIENT_EP, the latter
// carrying how much EP is missing.
package avatarstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/logging"
)

// ErrSoldOut means the avatar's limited stock is exhausted.
var ErrSoldOut = errors.New("avatar is sold out")

// InsufficientEPError reports how much EP the purchase is short.
type InsufficientEPError struct {
	NeedMore int64
}

func (e *InsufficientEPError) Error() string {
	return fmt.Sprintf("insufficient EP, need %d more", e.NeedMore)
}

// Service wraps the avatar store endpoints.
type Service struct {
	api     api.Client
	summary *api.Projection
	log     logging.Logger
}

func NewService(apiClient api.Client, summary *api.Projection, log logging.Logger) *Service {
	return &Service{api: apiClient, summary: summary, log: log}
}

func (s *Service) Catalog(ctx context.Context) (*api.AvatarCatalog, error) {
	return s.api.GetAvatarCatalog(ctx)
}

func (s *Service) State(ctx context.Context) (*api.AvatarState, error) {
	return s.api.GetAvatarState(ctx)
}

// Buy purchases an avatar by ID and refreshes the summary so the spent
// EP shows up. Store-specific failures are translated to ErrSoldOut or
// InsufficientEPError.
func (s *Service) Buy(ctx context.Context, avatarID string) (*api.AvatarState, error) {
	state, err := s.api.BuyAvatar(ctx, avatarID)
	if err != nil {
		return nil, translateBuyError(err)
	}

	if _, err := s.summary.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "summary refresh after avatar buy failed", "error", err)
	}
	return state, nil
}

func translateBuyError(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case "SOLD_OUT":
		return ErrSoldOut
	case "INSUFFICIENT_EP":
		var payload struct {
			NeedMore int64 `json:"needMore"`
		}
		// needMore rides in the error body alongside the code
		_ = json.Unmarshal(apiErr.Raw, &payload)
		return &InsufficientEPError{NeedMore: payload.NeedMore}
	}
	return err
}
