package cli

import (
	"context"
	"fmt"

	"github.com/kudilabs/kudi-client/internal/client/daily"
	"github.com/kudilabs/kudi-client/internal/common"
)

// Claim runs one daily action claim.
func (a *App) Claim(ctx context.Context, args []string) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: claim <tap|checkin|kudi-push|mini-challenge>")
	}

	kind, err := daily.ParseKind(args[0])
	if err != nil {
		return err
	}

	out, err := a.engine.Claim(ctx, kind)
	if err != nil {
		return err
	}
	fmt.Println("✅", out.Message)
	return nil
}

// Spin runs one slot spin.
func (a *App) Spin(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}

	out, err := a.engine.Spin(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("[ %s ]\n", joinRow(out.SlotRow))
	if out.SlotWin {
		fmt.Println("✅", out.Message)
	} else {
		fmt.Println("No win, spin again!")
	}
	return nil
}

func joinRow(row []string) string {
	s := ""
	for i, r := range row {
		if i > 0 {
			s += " | "
		}
		s += r
	}
	return s
}
