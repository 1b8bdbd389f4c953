package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kudilabs/kudi-client/internal/client/profile"
	"github.com/kudilabs/kudi-client/internal/client/purchase"
	"github.com/kudilabs/kudi-client/internal/common"
)

// Buy purchases a USDC package: on-chain transfer first, then backend
// verification.
func (a *App) Buy(ctx context.Context, args []string) error {
	if !a.isLoggedIn(ctx) {
		return common.ErrUnauthorized
	}
	if len(args) == 0 {
		fmt.Println("Packages:")
		for _, pkg := range purchase.Packages {
			amount, _ := pkg.AmountUSDC()
			fmt.Printf("  %-8s %s\n", strings.ToLower(string(pkg)), profile.FormatUSDC(amount))
		}
		return fmt.Errorf("usage: buy <starter|pro|elite>")
	}

	if err := a.ensureWallet(ctx); err != nil {
		return err
	}

	pkg := purchase.Package(strings.ToUpper(args[0]))
	amount, err := pkg.AmountUSDC()
	if err != nil {
		return err
	}

	ok, err := getConfirmation(a.reader,
		fmt.Sprintf("Send %s to the treasury?", profile.FormatUSDC(amount)), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	receipt, err := a.purchases.Buy(ctx, pkg)
	if receipt != nil && receipt.Signature != "" {
		fmt.Printf("Transfer signature: %s\n", receipt.Signature)
	}
	if err != nil {
		return err
	}

	fmt.Println("✅ Package activated!")
	return nil
}
