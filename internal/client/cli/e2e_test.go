package cli

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/client/auth"
	"github.com/kudilabs/kudi-client/internal/client/daily"
	"github.com/kudilabs/kudi-client/internal/client/referral"
	"github.com/kudilabs/kudi-client/internal/client/repositories/state"
	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/logging"
	"github.com/kudilabs/kudi-client/internal/wallet"
)

// testBackend is an in-memory stand-in for the rewards API. It enforces
// the session-id handshake and verifies real ed25519 signatures, so the
// whole client stack from keystore to daily claims runs against it
// unmodified.
type testBackend struct {
	mu sync.Mutex

	wantSID string

	nonceMessage string
	nonceToken   string
	bearer       string
	wallet       string

	ep          int64
	lastTapDay  string
	resyncCount int
}

const dayKeyToday = "2025-03-01"

func (b *testBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/nonce", b.handleNonce)
	mux.HandleFunc("POST /auth/verify", b.handleVerify)
	mux.HandleFunc("GET /me/summary", b.withSession(b.handleSummary))
	mux.HandleFunc("POST /daily/tap", b.withSession(b.handleTap))
	return mux
}

// withSession rejects a mismatched X-Session-Id with the resync payload
// the real backend sends.
func (b *testBackend) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		want := b.wantSID
		b.mu.Unlock()

		if got := r.Header.Get(common.SessionIDHeaderName); want != "" && got != want {
			b.mu.Lock()
			b.resyncCount++
			b.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "SESSION_MISMATCH",
				"expectedSessionId": want,
			})
			return
		}
		next(w, r)
	}
}

func (b *testBackend) handleNonce(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.wallet = r.URL.Query().Get("wallet")
	b.mu.Unlock()
	json.NewEncoder(w).Encode(map[string]string{
		"token":   b.nonceToken,
		"message": b.nonceMessage,
	})
}

func (b *testBackend) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token     string `json:"token"`
		Signature string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token != b.nonceToken {
		http.Error(w, `{"error":"BAD_TOKEN"}`, http.StatusBadRequest)
		return
	}

	sig, err := base58.Decode(req.Signature)
	if err != nil {
		http.Error(w, `{"error":"BAD_SIGNATURE"}`, http.StatusBadRequest)
		return
	}
	pub, err := base58.Decode(b.wallet)
	if err != nil || len(pub) != ed25519.PublicKeySize ||
		!ed25519.Verify(ed25519.PublicKey(pub), []byte(b.nonceMessage), sig) {
		http.Error(w, `{"error":"SIGNATURE_MISMATCH"}`, http.StatusUnauthorized)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"ok":          true,
		"bearerToken": b.bearer,
	})
}

func (b *testBackend) requireBearer(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get(common.AuthorizationHeaderName) != "Bearer "+b.bearer {
		http.Error(w, `{"error":"UNAUTHORIZED"}`, http.StatusUnauthorized)
		return false
	}
	return true
}

func (b *testBackend) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !b.requireBearer(w, r) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	json.NewEncoder(w).Encode(map[string]any{
		"ep":           b.ep,
		"careerTier":   "K0",
		"dailyTapLast": b.lastTapDay,
	})
}

func (b *testBackend) handleTap(w http.ResponseWriter, r *http.Request) {
	if !b.requireBearer(w, r) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastTapDay == dayKeyToday {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":    false,
			"error": "daily_tap_failed",
		})
		return
	}
	b.lastTapDay = dayKeyToday
	b.ep += 25
	json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

// TestWalletLoginAndDailyClaim drives the full client stack against a
// fake backend: keystore creation, nonce signing, bearer adoption,
// session-id resync and a daily tap claim including its once-per-day
// rejection.
func TestWalletLoginAndDailyClaim(t *testing.T) {
	backend := &testBackend{
		nonceMessage: "Sign in to KUDI",
		nonceToken:   "tok_1",
		bearer:       "sess_abc",
		wantSID:      "srv-sid-2",
	}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sessions := session.NewStore(state.NewMemoryRepository(), log)
	client := api.NewHTTPClient(srv.URL, 5*time.Second, sessions, log)
	summary := api.NewProjection(client)
	referrals := referral.NewService(client, sessions, log)

	w, err := wallet.CreateKeystore(filepath.Join(t.TempDir(), "keystore.json"), []byte("hunter2hunter2"))
	require.NoError(t, err)

	flow := auth.NewFlow(client, w, sessions, referrals, summary, log)

	pending, err := flow.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sign in to KUDI", pending.Message)

	flow.AcceptTerms()
	require.NoError(t, flow.Login(ctx))

	assert.Equal(t, pending.Wallet, sessions.Wallet(ctx))
	assert.Equal(t, "sess_abc", sessions.Bearer(ctx))
	assert.Equal(t, "srv-sid-2", sessions.SessionID(),
		"client adopts the server-directed session id")
	assert.GreaterOrEqual(t, backend.resyncCount, 1,
		"first authenticated call goes through a 409 resync")

	engine := daily.NewEngine(client, summary, log)
	out, err := engine.Claim(ctx, daily.KindTap)
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.Granted)
	require.NotNil(t, summary.Current())
	assert.Equal(t, int64(25), summary.Current().EP)

	_, err = engine.Claim(ctx, daily.KindTap)
	require.Error(t, err)
	assert.EqualError(t, err, "daily_tap_failed")

	flow.Logout(ctx)
	assert.Empty(t, sessions.Bearer(ctx))
	assert.Nil(t, summary.Current())
}
