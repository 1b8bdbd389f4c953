package config

import (
	"flag"
	"os"
	"time"

	"github.com/kudilabs/kudi-client/internal/flagx"
)

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-api string       backend base URL
//	-rpc string       Solana RPC endpoint
//	-db string        local state database path
//	-keystore string  wallet keystore path
//	-t int            request timeout in seconds
//
// The function filters os.Args to only the flags it owns, via
// flagx.FilterArgs, so the JSON stage's -c/-config flags pass through
// untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-api", "-rpc", "-db", "-keystore", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "KUDI backend base URL")
	fs.StringVar(&cfg.SolanaRPCURL, "rpc", cfg.SolanaRPCURL, "Solana RPC endpoint")
	fs.StringVar(&cfg.StateDBPath, "db", cfg.StateDBPath, "local state database path")
	fs.StringVar(&cfg.KeystorePath, "keystore", cfg.KeystorePath, "wallet keystore path")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = secondsToDuration(*timeoutSec)
}
