// Package common contains shared constants, sentinel errors and small
// helpers used across the KUDI client components. Callers should use
// errors.Is to match the sentinel values.
package common

import "errors"

var (
	// Session / auth errors.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTermsNotAccepted = errors.New("terms not accepted")

	// Wallet provider errors.
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrSignatureRejected = errors.New("signature rejected")

	// Chain errors.
	ErrTxSignatureMissing = errors.New("tx signature missing")
	ErrConfirmationFailed = errors.New("transaction confirmation failed")
)
