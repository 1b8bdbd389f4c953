package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *HTTPClient) GetNonce(ctx context.Context, wallet string) (*NonceResponse, error) {
	var out NonceResponse
	path := "/auth/nonce?wallet=" + url.QueryEscape(wallet)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Verify(ctx context.Context, token, signature string) (*VerifyResponse, error) {
	var out VerifyResponse
	body := map[string]string{"token": token, "signature": signature}
	if err := c.do(ctx, http.MethodPost, "/auth/verify", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetSummary(ctx context.Context) (*DailySummary, error) {
	var out DailySummary
	if err := c.do(ctx, http.MethodGet, "/me/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetNickname(ctx context.Context, nickname string) (*ActionResult, error) {
	var out ActionResult
	body := map[string]string{"nickname": nickname}
	if err := c.do(ctx, http.MethodPost, "/me/nickname", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AttachReferral(ctx context.Context, refCode string) (*AttachResult, error) {
	var out AttachResult
	body := map[string]string{"refCode": refCode}
	if err := c.do(ctx, http.MethodPost, "/referral/attach", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimDaily posts to /daily/<path> with no body; path is one of the fixed
// daily action endpoints (tap, checkin, kudi-push, mini-challenge).
func (c *HTTPClient) ClaimDaily(ctx context.Context, path string) (*ActionResult, error) {
	var out ActionResult
	if err := c.do(ctx, http.MethodPost, "/daily/"+path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SpinSlot(ctx context.Context) (*SpinResult, error) {
	var out SpinResult
	if err := c.do(ctx, http.MethodPost, "/slot/spin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetSlotStatus(ctx context.Context) (*SlotStatus, error) {
	var out SlotStatus
	if err := c.do(ctx, http.MethodGet, "/slot/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyPurchase(ctx context.Context, txSig string, packageAmount float64) (*ActionResult, error) {
	var out ActionResult
	body := map[string]any{"txSig": txSig, "packageAmount": packageAmount}
	if err := c.do(ctx, http.MethodPost, "/purchase/verifyTx", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Withdraw(ctx context.Context, amount float64) (*WithdrawResult, error) {
	var out WithdrawResult
	body := map[string]float64{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/cashout/withdraw", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetLeaderboard(ctx context.Context, mode LeaderboardMode) (*Leaderboard, error) {
	if mode != LeaderboardAllTime {
		mode = LeaderboardToday
	}
	var out Leaderboard
	path := "/leaderboard?mode=" + url.QueryEscape(string(mode))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGlobalDailyReport fetches the game-wide daily report; the backend
// only serves it to master wallets, everyone else gets a 403.
func (c *HTTPClient) GetGlobalDailyReport(ctx context.Context, date string) (*DailyReport, error) {
	var out DailyReport
	path := "/report/global/daily?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTeamDailyReport fetches the caller's own L1+L2 network report.
func (c *HTTPClient) GetTeamDailyReport(ctx context.Context, date string) (*DailyReport, error) {
	var out DailyReport
	path := "/report/team/daily?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetAvatarCatalog(ctx context.Context) (*AvatarCatalog, error) {
	var out AvatarCatalog
	if err := c.do(ctx, http.MethodGet, "/api/avatarstore/catalog", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetAvatarState(ctx context.Context) (*AvatarState, error) {
	var out AvatarState
	if err := c.do(ctx, http.MethodGet, "/api/avatarstore/state", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) BuyAvatar(ctx context.Context, avatarID string) (*AvatarState, error) {
	var out AvatarState
	body := map[string]string{"avatarId": avatarID}
	if err := c.do(ctx, http.MethodPost, "/api/avatarstore/buy", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
