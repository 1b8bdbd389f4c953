package common

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DayKeyUTC formats the given instant as the UTC calendar day it falls on,
// in YYYY-MM-DD form. All "once per day" claim flags compare against this
// key; the reset boundary is 00:00 UTC.
func DayKeyUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MakeRandHexString generates a random hexadecimal string from size random
// bytes (the result is twice as long). Used as a best-effort session id
// fallback when uuid generation is unavailable.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites the contents of b with zeros. Used to remove
// keystore passphrases from memory after use. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
