// Package referral implements referral code handling: format validation,
// invite-link parsing and the attach-once protocol that runs after login.
package referral

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/logging"
)

// ErrInvalidCode means the code does not match the REF-XXXX format.
var ErrInvalidCode = errors.New("invalid referral code format")

var codePattern = regexp.MustCompile(`(?i)^REF-[A-Z0-9]+$`)

// IsValidCode reports whether s matches the referral code format,
// case-insensitively.
func IsValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// CodeFromInviteURL extracts the ?ref= query parameter from an invite
// link. Returns "" when the URL carries none.
func CodeFromInviteURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("ref")
}

// InviteLink builds the shareable invite URL for the user's own code.
func InviteLink(origin, code string) string {
	if code == "" {
		return ""
	}
	return strings.TrimRight(origin, "/") + "/?ref=" + url.QueryEscape(code)
}

// Service drives referral attachment against the backend.
type Service struct {
	api      api.Client
	sessions *session.Store
	log      logging.Logger
}

func NewService(apiClient api.Client, sessions *session.Store, log logging.Logger) *Service {
	return &Service{api: apiClient, sessions: sessions, log: log}
}

// Save stores the pending referral code locally. An empty code clears
// the pending value; an invalid one is rejected without storing.
// Attachment itself only happens after login, in AttachPending.
func (s *Service) Save(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		s.sessions.SetPendingRefCode(ctx, "")
		return nil
	}
	if !IsValidCode(code) {
		return ErrInvalidCode
	}
	s.sessions.SetPendingRefCode(ctx, code)
	return nil
}

// AttachPending attaches the stored pending code for the logged-in
// wallet, at most once per wallet. It is a no-op when there is no valid
// pending code, when the wallet already attached locally, or when the
// server already reports an upline. Both a fresh attach and the server's
// alreadyAttached answer mark the wallet done.
func (s *Service) AttachPending(ctx context.Context) error {
	wallet := s.sessions.Wallet(ctx)
	if wallet == "" {
		return nil
	}

	code := strings.TrimSpace(s.sessions.PendingRefCode(ctx))
	if code == "" || !IsValidCode(code) {
		return nil
	}

	if s.sessions.RefAttachDone(ctx, wallet) {
		return nil
	}

	// The server's upline wins over anything stored locally.
	if summary, err := s.api.GetSummary(ctx); err == nil && summary.UplineWallet != "" {
		s.sessions.MarkRefAttachDone(ctx, wallet)
		return nil
	}

	res, err := s.api.AttachReferral(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to attach referral: %w", err)
	}

	s.sessions.MarkRefAttachDone(ctx, wallet)
	if res.AlreadyAttached {
		s.log.Debug(ctx, "referral already attached", "wallet", wallet)
	} else {
		s.log.Info(ctx, "referral attached", "wallet", wallet, "code", code)
	}
	return nil
}
