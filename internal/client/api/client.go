package api

import (
	"context"
)

// LeaderboardMode selects the scoring window of GET /leaderboard.
type LeaderboardMode string

const (
	LeaderboardToday   LeaderboardMode = "today"
	LeaderboardAllTime LeaderboardMode = "alltime"
)

// Client is the backend API contract. All methods honor context
// cancellation and return *Error for server-reported failures.
type Client interface {
	// Auth.
	GetNonce(ctx context.Context, wallet string) (*NonceResponse, error)
	Verify(ctx context.Context, token, signature string) (*VerifyResponse, error)

	// Profile.
	GetSummary(ctx context.Context) (*DailySummary, error)
	SetNickname(ctx context.Context, nickname string) (*ActionResult, error)

	// Referral.
	AttachReferral(ctx context.Context, refCode string) (*AttachResult, error)

	// Daily actions. path is the endpoint suffix, e.g. "tap".
	ClaimDaily(ctx context.Context, path string) (*ActionResult, error)
	SpinSlot(ctx context.Context) (*SpinResult, error)
	GetSlotStatus(ctx context.Context) (*SlotStatus, error)

	// Purchases and cashout.
	VerifyPurchase(ctx context.Context, txSig string, packageAmount float64) (*ActionResult, error)
	Withdraw(ctx context.Context, amount float64) (*WithdrawResult, error)

	// Boards and store.
	GetLeaderboard(ctx context.Context, mode LeaderboardMode) (*Leaderboard, error)
	GetGlobalDailyReport(ctx context.Context, date string) (*DailyReport, error)
	GetTeamDailyReport(ctx context.Context, date string) (*DailyReport, error)
	GetAvatarCatalog(ctx context.Context) (*AvatarCatalog, error)
	GetAvatarState(ctx context.Context) (*AvatarState, error)
	BuyAvatar(ctx context.Context, avatarID string) (*AvatarState, error)
}
