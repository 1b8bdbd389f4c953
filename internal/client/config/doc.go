// Package config loads runtime settings for the KUDI client.
//
// Sources are applied in order, later ones winning:
//
//  1. Built-in defaults (production mint/treasury, mainnet RPC).
//  2. A JSON file named by -c/-config.
//  3. KUDI_* environment variables.
//  4. Command-line flags (-api, -rpc, -db, -keystore, -t).
//
// Each stage parses only the flags it owns (see flagx), so the stages stay
// independent of each other and of flags defined by other packages.
package config
