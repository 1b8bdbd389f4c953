package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/wallet"
)

var getSimpleText = GetSimpleText
var getPassphrase = GetPassphrase
var getConfirmation = GetConfirmation

// ensureWallet opens (or creates) the local keystore and binds the
// wallet-dependent flows. Repeat calls are no-ops.
func (a *App) ensureWallet(ctx context.Context) error {
	if a.wallet != nil {
		return nil
	}

	path := a.config.KeystorePath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("No wallet keystore at %s.\n", path)
		fmt.Printf("On mobile, open the dashboard inside Phantom instead: %s\n",
			wallet.PhantomDeepLink(a.config.DashboardURL))

		create, err := getConfirmation(a.reader, "Create a new local wallet?", os.Stdout)
		if err != nil {
			return err
		}
		if !create {
			return common.ErrWalletNotFound
		}

		pass, err := getPassphrase(os.Stdout, "Choose a keystore passphrase")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(pass)

		w, err := wallet.CreateKeystore(path, pass)
		if err != nil {
			return err
		}
		addr, _ := w.Address()
		fmt.Printf("Created wallet %s\n", addr)
		return a.bindWallet(w)
	}

	pass, err := getPassphrase(os.Stdout, "Keystore passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	w, err := wallet.OpenKeystore(path, pass)
	if err != nil {
		return err
	}
	return a.bindWallet(w)
}

// Connect runs the full sign-in: wallet approval, nonce, terms gate,
// signature and verification.
func (a *App) Connect(ctx context.Context) error {
	if err := a.ensureWallet(ctx); err != nil {
		return err
	}

	pending, err := a.flow.Connect(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Wallet %s\nMessage to sign: %q\n", shortWallet(pending.Wallet), pending.Message)

	ok, err := getConfirmation(a.reader, "Accept the Terms of Service?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrTermsNotAccepted
	}
	a.flow.AcceptTerms()

	if err := a.flow.Login(ctx); err != nil {
		return err
	}
	fmt.Println("✅ Wallet connected.")
	return nil
}

// Logout drops the durable credentials and cached summary.
func (a *App) Logout(ctx context.Context) error {
	if a.flow != nil {
		a.flow.Logout(ctx)
	} else {
		a.sessions.ClearCredentials(ctx)
		a.summary.Clear()
	}
	fmt.Println("Logged out.")
	return nil
}

// Reset wipes ALL local state: credentials, pending referral code and the
// per-wallet one-time flags that a plain logout keeps. The keystore file
// is untouched.
func (a *App) Reset(ctx context.Context) error {
	ok, err := getConfirmation(a.reader,
		"Erase all local state (credentials, referral and follow flags)?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	if a.flow != nil {
		a.flow.Logout(ctx)
	}
	a.sessions.Wipe(ctx)
	a.summary.Clear()
	fmt.Println("Local state erased.")
	return nil
}
