// Package auth implements the wallet sign-in flow: connect, nonce,
// message signature, verification and bearer adoption, plus the
// best-effort post-login referral attachment.
package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/mr-tron/base58"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/client/referral"
	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/logging"
	"github.com/kudilabs/kudi-client/internal/wallet"
)

// State is the login flow position. Transitions only move forward within
// one attempt; any failure resets to Disconnected.
type State string

const (
	StateDisconnected         State = "disconnected"
	StateAwaitingWalletOK     State = "awaiting_wallet_approval"
	StateAwaitingNonce        State = "awaiting_nonce"
	StateAwaitingSignature    State = "awaiting_signature"
	StateAwaitingVerification State = "awaiting_verification"
	StateAuthenticated        State = "authenticated"
)

// PendingLogin holds the transient handshake state between Connect and
// Login. It never touches durable storage.
type PendingLogin struct {
	Wallet  string
	Token   string
	Message string
}

// Flow drives authentication for one wallet provider.
type Flow struct {
	api       api.Client
	wallet    wallet.Provider
	sessions  *session.Store
	referrals *referral.Service
	summary   *api.Projection
	log       logging.Logger

	mu      sync.Mutex
	state   State
	pending *PendingLogin
	termsOK bool
}

func NewFlow(apiClient api.Client, w wallet.Provider, sessions *session.Store,
	referrals *referral.Service, summary *api.Projection, log logging.Logger) *Flow {
	return &Flow{
		api:       apiClient,
		wallet:    w,
		sessions:  sessions,
		referrals: referrals,
		summary:   summary,
		log:       log,
		state:     StateDisconnected,
	}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// AcceptTerms records that the user accepted the terms of service for
// this login attempt.
func (f *Flow) AcceptTerms() {
	f.mu.Lock()
	f.termsOK = true
	f.mu.Unlock()
}

// Pending returns the in-progress handshake, or nil.
func (f *Flow) Pending() *PendingLogin {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Resume restores an authenticated session from durable credentials
// without a new handshake. Returns the wallet address, or "" when no
// credentials survive.
func (f *Flow) Resume(ctx context.Context) string {
	w := f.sessions.Wallet(ctx)
	if w == "" || f.sessions.Bearer(ctx) == "" {
		return ""
	}
	f.setState(StateAuthenticated)
	return w
}

// Connect approves the wallet and fetches the sign-in nonce, leaving the
// flow waiting for the user's signature via Login.
func (f *Flow) Connect(ctx context.Context) (*PendingLogin, error) {
	f.mu.Lock()
	f.pending = nil
	f.termsOK = false
	f.state = StateAwaitingWalletOK
	f.mu.Unlock()

	addr, err := f.wallet.Connect(ctx)
	if err != nil {
		f.setState(StateDisconnected)
		return nil, fmt.Errorf("%w: %v", common.ErrWalletNotFound, err)
	}

	f.setState(StateAwaitingNonce)
	nonce, err := f.api.GetNonce(ctx, addr.String())
	if err != nil {
		f.setState(StateDisconnected)
		return nil, fmt.Errorf("failed to get auth nonce: %w", err)
	}
	if nonce.Token == "" || nonce.Message == "" {
		f.setState(StateDisconnected)
		return nil, fmt.Errorf("auth nonce response incomplete")
	}

	pending := &PendingLogin{Wallet: addr.String(), Token: nonce.Token, Message: nonce.Message}
	f.mu.Lock()
	f.pending = pending
	f.state = StateAwaitingSignature
	f.mu.Unlock()
	return pending, nil
}

// Login signs the pending nonce message, verifies it with the backend and
// adopts the bearer token. The nonce token doubles as the bearer when the
// backend returns none. On success the pending referral code is attached
// best-effort and the summary is refreshed.
func (f *Flow) Login(ctx context.Context) error {
	f.mu.Lock()
	pending, termsOK := f.pending, f.termsOK
	f.mu.Unlock()

	if pending == nil {
		return fmt.Errorf("no login in progress, connect first")
	}
	if !termsOK {
		return common.ErrTermsNotAccepted
	}

	sig, err := f.wallet.SignMessage(ctx, []byte(pending.Message))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrSignatureRejected, err)
	}
	if len(sig) == 0 {
		return common.ErrSignatureRejected
	}

	f.setState(StateAwaitingVerification)
	res, err := f.api.Verify(ctx, pending.Token, base58.Encode(sig))
	if err != nil {
		// The nonce is single-use; a fresh Connect is required after a
		// failed verification.
		f.mu.Lock()
		f.pending = nil
		f.state = StateDisconnected
		f.mu.Unlock()
		return fmt.Errorf("verification failed: %w", err)
	}

	bearer := res.BearerToken
	if bearer == "" {
		bearer = pending.Token
	}
	f.sessions.SetCredentials(ctx, pending.Wallet, bearer)

	f.mu.Lock()
	f.pending = nil
	f.state = StateAuthenticated
	f.mu.Unlock()

	// Post-login side effects are best effort; a failed attach or refresh
	// never fails the login itself.
	if err := f.referrals.AttachPending(ctx); err != nil {
		f.log.Warn(ctx, "post-login referral attach failed",
			"reason", api.MapReferralError(err), "error", err)
	}
	if _, err := f.summary.Refresh(ctx); err != nil {
		f.log.Warn(ctx, "post-login summary refresh failed", "error", err)
	}

	f.log.Info(ctx, "wallet authenticated", "wallet", pending.Wallet)
	return nil
}

// Logout clears the durable credentials and the cached summary. The
// per-wallet referral and follow flags survive, so a returning wallet
// does not re-attach.
func (f *Flow) Logout(ctx context.Context) {
	f.sessions.ClearCredentials(ctx)
	f.summary.Clear()
	f.mu.Lock()
	f.pending = nil
	f.termsOK = false
	f.state = StateDisconnected
	f.mu.Unlock()
}
