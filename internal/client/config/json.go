package config

import (
	"encoding/json"
	"os"

	"github.com/kudilabs/kudi-client/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Only fields
// present in the file overlay the runtime Config; absent fields keep their
// earlier values.
type JsonConfig struct {
	APIBaseURL        string `json:"api_base_url"`
	DashboardURL      string `json:"dashboard_url"`
	SolanaRPCURL      string `json:"solana_rpc_url"`
	USDCMint          string `json:"usdc_mint"`
	TreasuryWallet    string `json:"treasury_wallet"`
	StateDBPath       string `json:"state_db_path"`
	KeystorePath      string `json:"keystore_path"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c or -config flag. When no file is given the function returns without
// touching cfg. Read or unmarshal errors panic; the loader runs before any
// network activity, so failing loudly at startup is the right behavior.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DashboardURL != "" {
		cfg.DashboardURL = jc.DashboardURL
	}
	if jc.SolanaRPCURL != "" {
		cfg.SolanaRPCURL = jc.SolanaRPCURL
	}
	if jc.USDCMint != "" {
		cfg.USDCMint = jc.USDCMint
	}
	if jc.TreasuryWallet != "" {
		cfg.TreasuryWallet = jc.TreasuryWallet
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
	if jc.KeystorePath != "" {
		cfg.KeystorePath = jc.KeystorePath
	}
	if jc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = secondsToDuration(jc.RequestTimeoutSec)
	}
}
