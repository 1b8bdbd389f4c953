package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/kudilabs/kudi-client/internal/client/api"
	"github.com/kudilabs/kudi-client/internal/client/auth"
	"github.com/kudilabs/kudi-client/internal/client/avatarstore"
	"github.com/kudilabs/kudi-client/internal/client/config"
	"github.com/kudilabs/kudi-client/internal/client/daily"
	"github.com/kudilabs/kudi-client/internal/client/profile"
	"github.com/kudilabs/kudi-client/internal/client/purchase"
	"github.com/kudilabs/kudi-client/internal/client/referral"
	"github.com/kudilabs/kudi-client/internal/client/repositories/state"
	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/logging"
	"github.com/kudilabs/kudi-client/internal/solana"
	"github.com/kudilabs/kudi-client/internal/solana/rpc"
	"github.com/kudilabs/kudi-client/internal/wallet"

	_ "modernc.org/sqlite"
)

// App wires the client services behind the REPL commands.
type App struct {
	config *config.Config
	log    logging.Logger
	reader *bufio.Reader

	api       api.Client
	sessions  *session.Store
	summary   *api.Projection
	referrals *referral.Service
	engine    *daily.Engine
	profiles  *profile.Service
	avatars   *avatarstore.Service
	chain     purchase.ChainClient

	// set once a keystore is opened via ensureWallet
	wallet    wallet.Provider
	flow      *auth.Flow
	purchases *purchase.Flow

	db *sql.DB
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// A broken local DB degrades to in-memory state instead of blocking
	// the session entirely.
	var repo state.Repository
	db, err := session.OpenStateDB(ctx, cfg.StateDBPath)
	if err != nil {
		log.Warn(ctx, "state database unavailable, using in-memory state", "error", err)
		repo = state.NewMemoryRepository()
	} else {
		repo = state.NewSQLiteRepository(db)
	}
	sessions := session.NewStore(repo, log)

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, sessions, log)
	summary := api.NewProjection(apiClient)
	chain, err := rpc.NewClient(cfg.SolanaRPCURL, cfg.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    cfg,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		api:       apiClient,
		sessions:  sessions,
		summary:   summary,
		referrals: referral.NewService(apiClient, sessions, log),
		engine:    daily.NewEngine(apiClient, summary, log),
		profiles:  profile.NewService(apiClient, sessions, summary, log),
		avatars:   avatarstore.NewService(apiClient, summary, log),
		chain:     chain,
		db:        db,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.sessions.Bearer(ctx) != ""
}

// bindWallet builds the wallet-dependent flows once a provider exists.
func (a *App) bindWallet(w wallet.Provider) error {
	mint, err := solana.ParsePublicKey(a.config.USDCMint)
	if err != nil {
		return err
	}
	treasury, err := solana.ParsePublicKey(a.config.TreasuryWallet)
	if err != nil {
		return err
	}

	a.wallet = w
	a.flow = auth.NewFlow(a.api, w, a.sessions, a.referrals, a.summary, a.log)
	a.purchases = purchase.NewFlow(a.api, w, a.chain, a.summary, mint, treasury, a.log)
	return nil
}
