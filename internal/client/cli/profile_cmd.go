package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/common"
)

// Nickname prompts for and saves a new nickname.
func (a *App) Nickname(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}

	raw, err := getSimpleText(a.reader, "Enter nickname (3-15 chars, letters/digits/_)", os.Stdout)
	if err != nil {
		return err
	}

	nick, err := a.profiles.SetNickname(ctx, raw)
	if err != nil {
		return fmt.Errorf("%s", api.MapNicknameError(err))
	}
	fmt.Printf("✅ Nickname saved: %s\n", nick)
	return nil
}

// Cashout withdraws Career Cash to the wallet.
func (a *App) Cashout(ctx context.Context, args []string) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: cashout <amount>")
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %s", args[0])
	}

	sig, err := a.profiles.Withdraw(ctx, amount)
	if err != nil {
		return fmt.Errorf("%s", api.MapCashoutError(err))
	}

	fmt.Println("✅ Withdrawal requested.")
	if sig != "" {
		fmt.Printf("Payout signature: %s\n", sig)
	}
	return nil
}

// Follow shows or completes the one-time social follow tasks.
func (a *App) Follow(ctx context.Context, args []string) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}

	if len(args) > 0 {
		if err := a.profiles.MarkFollowDone(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✅ Marked %s as done.\n", args[0])
	}

	status, err := a.profiles.FollowStatus(ctx)
	if err != nil {
		return err
	}
	for kind, done := range status {
		state := "open"
		if done {
			state = "done"
		}
		fmt.Printf("  %-10s [%s]\n", kind, state)
	}
	if a.profiles.AllFollowDone(ctx) {
		fmt.Println("All follow tasks complete.")
	}
	return nil
}
