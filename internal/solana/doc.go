// Package solana implements the minimal Solana primitives the purchase
// flow needs: base58 public keys, program-derived addresses, the two SPL
// token instructions we emit, and legacy transaction assembly/signing.
package solana
