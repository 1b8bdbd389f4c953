package solana

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

// pdaMarker is appended when hashing seeds so derived addresses can never
// collide with hashes produced outside address derivation.
const pdaMarker = "ProgramDerivedAddress"

// ErrNoBumpFound means no bump seed in [0,255] produced an off-curve
// address. Practically unreachable for honest inputs.
var ErrNoBumpFound = errors.New("unable to find a viable program address bump")

// CreateProgramAddress derives the address for the given seeds, failing
// when the result lands on the ed25519 curve.
func CreateProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, error) {
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > 32 {
			return PublicKey{}, fmt.Errorf("seed exceeds 32 bytes: %d", len(seed))
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	pk, err := PublicKeyFromBytes(h.Sum(nil))
	if err != nil {
		return PublicKey{}, err
	}
	if pk.IsOnCurve() {
		return PublicKey{}, errors.New("derived address falls on the ed25519 curve")
	}
	return pk, nil
}

// FindProgramAddress searches bump seeds from 255 downward for the first
// off-curve derivation. Returns the address and the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		pk, err := CreateProgramAddress(append(seeds, []byte{uint8(bump)}), programID)
		if err == nil {
			return pk, uint8(bump), nil
		}
	}
	return PublicKey{}, 0, ErrNoBumpFound
}

// FindAssociatedTokenAddress derives the associated token account for a
// wallet and mint.
func FindAssociatedTokenAddress(wallet, mint PublicKey) (PublicKey, error) {
	pk, _, err := FindProgramAddress(
		[][]byte{wallet.Bytes(), TokenProgramID.Bytes(), mint.Bytes()},
		AssociatedTokenProgramID,
	)
	if err != nil {
		return PublicKey{}, fmt.Errorf("failed to derive associated token address: %w", err)
	}
	return pk, nil
}
