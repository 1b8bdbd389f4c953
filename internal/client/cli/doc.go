// Package cli implements the interactive KUDI client: a read-eval-print
// loop over the client services, from wallet login through daily claims,
// purchases and the avatar store.
package cli
