package wallet

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/kudilabs/kudi-client/internal/solana"
)

// LocalWallet signs with an ed25519 keypair loaded from a keystore file.
type LocalWallet struct {
	priv    ed25519.PrivateKey
	address solana.PublicKey
}

var _ Provider = (*LocalWallet)(nil)

func solanaPublicKey(pub ed25519.PublicKey) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBytes(pub)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid wallet public key: %w", err)
	}
	return pk, nil
}

// Connect is a no-op for a local wallet; the key is already in memory.
func (w *LocalWallet) Connect(_ context.Context) (solana.PublicKey, error) {
	return w.Address()
}

func (w *LocalWallet) Address() (solana.PublicKey, error) {
	if w == nil || w.priv == nil {
		return solana.PublicKey{}, ErrNotConnected
	}
	return w.address, nil
}

func (w *LocalWallet) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	if w == nil || w.priv == nil {
		return nil, ErrNotConnected
	}
	return ed25519.Sign(w.priv, msg), nil
}

func (w *LocalWallet) SignTransaction(_ context.Context, tx *solana.Transaction) error {
	if w == nil || w.priv == nil {
		return ErrNotConnected
	}
	return tx.Sign(w.priv)
}
