package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/kudilabs/kudi-client/internal/client/daily"
	"github.com/kudilabs/kudi-client/internal/client/profile"
	"github.com/kudilabs/kudi-client/internal/common"
)

// Summary refetches and prints the account snapshot.
func (a *App) Summary(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}

	s, err := a.summary.Refresh(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	tier := profile.ComputeTierProgress(s)

	fmt.Printf("Nickname:     %s\n", orDash(s.Nickname))
	fmt.Printf("EP:           %d\n", s.EP)
	fmt.Printf("Career tier:  %s", tier.Tier)
	if tier.NextTier != "" {
		fmt.Printf(" (%d EP to %s)", tier.Remaining, tier.NextTier)
	}
	fmt.Println()
	fmt.Printf("Career cash:  %s\n", profile.FormatUSDC(s.USDAvailable))
	fmt.Printf("Referrals:    L1 %d / L2 %d\n", s.L1, s.L2)
	fmt.Printf("Ref code:     %s\n", orDash(s.RefCode))
	if profile.IsDailyChampion(s, now) {
		fmt.Printf("Daily champion until %s\n", s.DailyChampionUntil)
	}

	fmt.Println("Daily tasks:")
	for _, kind := range daily.Kinds {
		state := "open"
		if daily.HasClaimedToday(s, kind, now) {
			state = "claimed"
		}
		fmt.Printf("  %-15s +%d EP  [%s]\n", kind, daily.Reward(kind), state)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
