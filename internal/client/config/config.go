package config

import "time"

// Config holds runtime settings for the KUDI client.
//
// Fields:
//   - APIBaseURL: base URL of the KUDI backend (no trailing slash).
//   - SolanaRPCURL: Solana JSON-RPC endpoint used for purchases.
//   - USDCMint: mint address of the USDC token.
//   - TreasuryWallet: owner address receiving package payments.
//   - DashboardURL: public dashboard origin, used for invite links and
//     the Phantom in-app-browser deep link.
//   - StateDBPath: path of the local SQLite state database.
//   - KeystorePath: path of the encrypted wallet keystore file.
//   - RequestTimeout: per-request HTTP timeout for backend and RPC calls.
type Config struct {
	APIBaseURL     string        `env:"KUDI_API_BASE"`
	DashboardURL   string        `env:"KUDI_DASHBOARD_URL"`
	SolanaRPCURL   string        `env:"KUDI_SOLANA_RPC"`
	USDCMint       string        `env:"KUDI_USDC_MINT"`
	TreasuryWallet string        `env:"KUDI_TREASURY_WALLET"`
	StateDBPath    string        `env:"KUDI_STATE_DB"`
	KeystorePath   string        `env:"KUDI_KEYSTORE"`
	RequestTimeout time.Duration `env:"KUDI_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults. Mint and treasury match
// the production deployment and can be overridden for devnet testing.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:4010"
	c.DashboardURL = "https://kudiskunk.app"
	c.SolanaRPCURL = "https://api.mainnet-beta.solana.com"
	c.USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	c.TreasuryWallet = "BAozCCttGU7SVvpSdGzqoTrdEK3jrp3gU1nF6h8GfykR"
	c.StateDBPath = "kudi.db"
	c.KeystorePath = "keystore.json"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a -c/-config file is given), environment variables, and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
