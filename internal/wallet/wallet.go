// Package wallet abstracts the Solana wallet used to authenticate and to
// sign purchase transactions. The default implementation is a local
// ed25519 keypair held in a passphrase-encrypted keystore file; mobile
// users without one are pointed at the Phantom in-app browser instead.
package wallet

import (
	"context"
	"errors"

	"github.com/kudilabs/kudi-client/internal/solana"
)

var (
	// ErrInvalidPassphrase means the keystore could not be decrypted.
	ErrInvalidPassphrase = errors.New("invalid keystore passphrase")
	// ErrNotConnected means an operation needs a connected wallet.
	ErrNotConnected = errors.New("wallet is not connected")
)

// Provider is the wallet surface the auth and purchase flows depend on.
type Provider interface {
	// Connect makes the wallet usable and returns its address.
	Connect(ctx context.Context) (solana.PublicKey, error)
	// Address returns the connected wallet address.
	Address() (solana.PublicKey, error)
	// SignMessage signs an arbitrary byte message with the wallet key.
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
	// SignTransaction fills the wallet's signature slot in place.
	SignTransaction(ctx context.Context, tx *solana.Transaction) error
}
