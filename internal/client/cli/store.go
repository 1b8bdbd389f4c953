package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudilabs/kudi-client/internal/client/avatarstore"
	"github.com/kudilabs/kudi-client/internal/common"
)

// Store browses the avatar shop: no args lists the catalog and owned
// avatars, "buy <id>" purchases one with EP.
func (a *App) Store(ctx context.Context, args []string) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}

	if len(args) >= 2 && args[0] == "buy" {
		return a.storeBuy(ctx, args[1])
	}

	catalog, err := a.avatars.Catalog(ctx)
	if err != nil {
		return err
	}
	state, err := a.avatars.State(ctx)
	if err != nil {
		return err
	}

	owned := make(map[string]bool, len(state.OwnedAvatarIDs))
	for _, id := range state.OwnedAvatarIDs {
		owned[id] = true
	}

	fmt.Printf("Avatar store (you have %d EP):\n", state.EP)
	for _, item := range catalog.Catalog {
		note := fmt.Sprintf("%d left", item.Remaining)
		switch {
		case owned[item.ID]:
			note = "owned"
		case item.SoldOut:
			note = "SOLD OUT"
		}
		fmt.Printf("  %-20s %-10s %6d EP  (%s)\n", item.ID, item.Tier, item.PriceEP, note)
	}
	return nil
}

func (a *App) storeBuy(ctx context.Context, id string) error {
	state, err := a.avatars.Buy(ctx, id)
	if err != nil {
		var insufficient *avatarstore.InsufficientEPError
		switch {
		case errors.Is(err, avatarstore.ErrSoldOut):
			return fmt.Errorf("that avatar is sold out")
		case errors.As(err, &insufficient):
			return fmt.Errorf("not enough EP, you need %d more", insufficient.NeedMore)
		}
		return err
	}
	fmt.Printf("✅ Avatar purchased. EP left: %d\n", state.EP)
	return nil
}
