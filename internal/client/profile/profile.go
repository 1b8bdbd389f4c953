// Package profile covers the account-level features around the daily
// loop: nickname, career tier progression, cashout, the one-time social
// follow tasks and small display helpers.
package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/logging"
)

const (
	nicknameMinLen = 3
	nicknameMaxLen = 15
)

var (
	// ErrNicknameEmpty means nothing usable was left after sanitizing.
	ErrNicknameEmpty = errors.New("nickname is empty")
	// ErrNicknameTooShort means the sanitized nickname is under the minimum.
	ErrNicknameTooShort = errors.New("nickname must be at least 3 characters")
)

var nicknameStrip = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeNickname trims, drops leading @s, strips everything outside
// [A-Za-z0-9_] and cuts to the maximum length.
func SanitizeNickname(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "@")
	s = nicknameStrip.ReplaceAllString(s, "")
	if len(s) > nicknameMaxLen {
		s = s[:nicknameMaxLen]
	}
	return s
}

// FormatUSDC renders a USDC amount with two decimals for display.
func FormatUSDC(n float64) string {
	return fmt.Sprintf("%.2f USDC", n)
}

// IsDailyChampion reports whether the summary's champion window is still
// open at now.
func IsDailyChampion(s *api.DailySummary, now time.Time) bool {
	if s == nil || s.DailyChampionUntil == "" {
		return false
	}
	until, err := time.Parse(time.RFC3339, s.DailyChampionUntil)
	if err != nil {
		return false
	}
	return until.After(now)
}

// Service wraps the profile endpoints.
type Service struct {
	api      api.Client
	sessions *session.Store
	summary  *api.Projection
	log      logging.Logger
}

func NewService(apiClient api.Client, sessions *session.Store, summary *api.Projection, log logging.Logger) *Service {
	return &Service{api: apiClient, sessions: sessions, summary: summary, log: log}
}

// SetNickname sanitizes and saves the nickname, refreshing the summary
// on success. Length limits the server would reject anyway are checked
// client-side first.
func (s *Service) SetNickname(ctx context.Context, raw string) (string, error) {
	nick := SanitizeNickname(raw)
	if nick == "" {
		return "", ErrNicknameEmpty
	}
	if len(nick) < nicknameMinLen {
		return "", ErrNicknameTooShort
	}

	res, err := s.api.SetNickname(ctx, nick)
	if err != nil {
		return "", fmt.Errorf("failed to set nickname: %w", err)
	}
	if !res.Ok {
		reason := res.Error
		if reason == "" {
			reason = "unknown"
		}
		return "", errors.New(reason)
	}

	if _, err := s.summary.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "summary refresh after nickname change failed", "error", err)
	}
	return nick, nil
}
