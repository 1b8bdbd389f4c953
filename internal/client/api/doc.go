// Package api is the single choke point for all KUDI backend calls.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (the Client interface) covering every
//     backend operation: nonce/verify login, summary, daily claims, slot
//     spins, referral attach, purchase verification, nickname, cashout,
//     leaderboard and the avatar store.
//  2. A concrete HTTP implementation (HTTPClient) that attaches the
//     X-Session-Id header on every request and the bearer token when one is
//     present, and transparently recovers from a single server-directed
//     session resync (409 with expectedSessionId) by adopting the expected
//     id and retrying exactly once.
//  3. A typed error (*Error) carrying the server-supplied code so callers
//     can translate codes to user-facing text; the per-domain translation
//     tables live in errors.go.
//  4. The read-only summary projection (Projection): refetch-and-replace,
//     no partial patching, concurrent refreshes deduplicated.
//
// # Error Handling
//
// Transport and HTTP failures are returned as *Error; callers match domain
// codes via Error.Code and translate with MapReferralError and friends. The
// package itself never interprets codes semantically.
package api
