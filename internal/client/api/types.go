package api

// DailySummary is the backend's authoritative snapshot of the authenticated
// user. It is always replaced wholesale by the latest fetch, never patched
// field by field, so derived flags (claimed-today, champion) cannot drift
// from the server's daily-reset boundary.
type DailySummary struct {
	EP                     int64   `json:"ep"`
	CareerTier             string  `json:"careerTier"`
	Nickname               string  `json:"nickname"`
	RefCode                string  `json:"refCode"`
	DailyTapLast           string  `json:"dailyTapLast"`
	DailyCheckinLast       string  `json:"dailyCheckinLast"`
	DailyKudiPushLast      string  `json:"dailyKudiPushLast"`
	DailyMiniChallengeLast string  `json:"dailyMiniChallengeLast"`
	DailySlotSpinLast      string  `json:"dailySlotSpinLast"`
	USDAvailable           float64 `json:"usdAvailable"`
	DailyChampionUntil     string  `json:"dailyChampionUntil"`
	L1                     int     `json:"l1"`
	L2                     int     `json:"l2"`
	UplineWallet           string  `json:"uplineWallet"`
}

// NonceResponse is returned by GET /auth/nonce.
type NonceResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// VerifyResponse is returned by POST /auth/verify. BearerToken may be empty
// on older backends, in which case the client falls back to the nonce token.
type VerifyResponse struct {
	BearerToken string `json:"bearerToken"`
}

// ActionResult is the uniform body of the daily claim and other simple
// mutating endpoints: ok plus an optional server-supplied reason.
type ActionResult struct {
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// AttachResult is returned by POST /referral/attach. Both a fresh attach
// and alreadyAttached are terminal success states for the client.
type AttachResult struct {
	Ok              bool `json:"ok"`
	AlreadyAttached bool `json:"alreadyAttached"`
}

// SpinResult is returned by POST /slot/spin. CanSpin is a pointer because
// its absence is meaningful: the client then defaults permissive and lets
// the server reject exhausted spins itself.
type SpinResult struct {
	Ok           bool     `json:"ok"`
	Error        string   `json:"error,omitempty"`
	Result       []string `json:"result"`
	RewardEP     int64    `json:"rewardEp"`
	CanSpin      *bool    `json:"canSpin,omitempty"`
	NextResetUTC string   `json:"nextResetUtc,omitempty"`
}

// SlotStatus is returned by GET /slot/status.
type SlotStatus struct {
	Ok           bool   `json:"ok"`
	CanSpin      bool   `json:"canSpin"`
	NextResetUTC string `json:"nextResetUtc"`
}

// WithdrawResult is returned by POST /cashout/withdraw. Signature, when
// present, is the on-chain transfer signature of the payout.
type WithdrawResult struct {
	Ok        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// LeaderboardRow is one entry of the top-3 board.
type LeaderboardRow struct {
	Rank       int    `json:"rank"`
	Wallet     string `json:"wallet"`
	Name       string `json:"name"`
	Score      int64  `json:"score"`
	IsChampion bool   `json:"isChampion"`
}

// Leaderboard is returned by GET /leaderboard.
type Leaderboard struct {
	Top3          []LeaderboardRow `json:"top3"`
	DayKey        string           `json:"dayKey"`
	ResetAtUTC    string           `json:"resetAtUtc"`
	DailyChampion *LeaderboardRow  `json:"dailyChampion"`
}

// ReportKPI is the headline block of a daily report. TotalEPAwarded is
// populated on the global report, TotalTeamEP on the team report.
type ReportKPI struct {
	ActiveToday    int   `json:"activeToday"`
	EPEarners      int   `json:"epEarners"`
	TasksCompleted int   `json:"tasksCompleted"`
	TotalEPAwarded int64 `json:"totalEpAwarded"`
	TotalTeamEP    int64 `json:"totalTeamEp"`
}

// ReportTeam counts the caller's direct and second-level referrals; only
// the team report fills it.
type ReportTeam struct {
	L1Count int `json:"l1Count"`
	L2Count int `json:"l2Count"`
}

// ReportTaskBreakdown counts completed daily tasks per kind.
type ReportTaskBreakdown struct {
	Tap           int `json:"tap"`
	Checkin       int `json:"checkin"`
	Share         int `json:"share"`
	KudiPush      int `json:"kudiPush"`
	MiniChallenge int `json:"miniChallenge"`
}

// ReportEarner is one row of a report's top-earners list.
type ReportEarner struct {
	Wallet      string `json:"wallet"`
	DisplayName string `json:"displayName"`
	EP          int64  `json:"ep"`
}

// DailyReport is returned by GET /report/global/daily and
// GET /report/team/daily for a single UTC day.
type DailyReport struct {
	KPI           ReportKPI           `json:"kpi"`
	Team          ReportTeam          `json:"team"`
	TaskBreakdown ReportTaskBreakdown `json:"taskBreakdown"`
	TopEarners    []ReportEarner      `json:"topEarners"`
}

// AvatarItem is one catalog entry of the avatar store. The catalog is
// server-defined; the client treats it as display data.
type AvatarItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Tier      string `json:"tier"`
	PriceEP   int64  `json:"priceEp"`
	Remaining int    `json:"remaining"`
	SoldOut   bool   `json:"soldOut"`
}

// AvatarCatalog is returned by GET /api/avatarstore/catalog.
type AvatarCatalog struct {
	Catalog []AvatarItem `json:"catalog"`
}

// AvatarState is returned by GET /api/avatarstore/state and by a successful
// buy.
type AvatarState struct {
	OwnedAvatarIDs []string `json:"ownedAvatarIds"`
	EP             int64    `json:"ep"`
}
