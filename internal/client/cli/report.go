package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/kudilabs/kudi-client/internal/common"
)

// Report prints today's daily report. The global (game-wide) report is
// tried first; it is restricted to master wallets, so on rejection the
// command falls back to the caller's own team report.
func (a *App) Report(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}

	date := common.DayKeyUTC(time.Now())

	report, err := a.api.GetGlobalDailyReport(ctx, date)
	mode := "global"
	if err != nil {
		report, err = a.api.GetTeamDailyReport(ctx, date)
		mode = "team"
	}
	if err != nil {
		return err
	}

	if mode == "global" {
		fmt.Printf("Global report (%s, resets 00:00 UTC)\n", date)
	} else {
		fmt.Printf("Team report (%s, resets 00:00 UTC)\n", date)
	}

	kpi := report.KPI
	fmt.Printf("  Active today:     %d\n", kpi.ActiveToday)
	fmt.Printf("  EP earners:       %d\n", kpi.EPEarners)
	fmt.Printf("  Tasks completed:  %d\n", kpi.TasksCompleted)
	if mode == "global" {
		fmt.Printf("  Total EP awarded: %d\n", kpi.TotalEPAwarded)
	} else {
		fmt.Printf("  Total team EP:    %d\n", kpi.TotalTeamEP)
		fmt.Printf("  Members:          L1 %d / L2 %d\n", report.Team.L1Count, report.Team.L2Count)
	}

	bd := report.TaskBreakdown
	fmt.Println("Task breakdown:")
	fmt.Printf("  tap %d / checkin %d / share %d / kudi-push %d / mini-challenge %d\n",
		bd.Tap, bd.Checkin, bd.Share, bd.KudiPush, bd.MiniChallenge)

	fmt.Println("Top earners:")
	if len(report.TopEarners) == 0 {
		fmt.Println("  no data yet today")
	}
	for i, row := range report.TopEarners {
		name := row.DisplayName
		if name == "" {
			name = shortWallet(row.Wallet)
		}
		fmt.Printf("  #%d %-16s %d EP\n", i+1, name, row.EP)
	}
	return nil
}
