package cli

import (
	"context"
	"fmt"

	"github.com/kudilabs/kudi-client/internal/client/api"
)

// Leaderboard prints the top-3 board; pass "alltime" for the lifetime
// ranking. Works logged out as well, the endpoint is public.
func (a *App) Leaderboard(ctx context.Context, args []string) error {
	mode := api.LeaderboardToday
	if len(args) > 0 && args[0] == "alltime" {
		mode = api.LeaderboardAllTime
	}

	board, err := a.api.GetLeaderboard(ctx, mode)
	if err != nil {
		return err
	}

	fmt.Printf("Leaderboard (%s)\n", mode)
	if len(board.Top3) == 0 {
		fmt.Println("  no entries yet")
	}
	for _, row := range board.Top3 {
		name := row.Name
		if name == "" {
			name = shortWallet(row.Wallet)
		}
		champion := ""
		if row.IsChampion {
			champion = "  🏆"
		}
		fmt.Printf("  #%d %-16s %d EP%s\n", row.Rank, name, row.Score, champion)
	}
	if board.ResetAtUTC != "" {
		fmt.Printf("Resets at %s\n", board.ResetAtUTC)
	}
	return nil
}
