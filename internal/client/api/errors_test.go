package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapReferralError(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"invalid_refCode", "Invalid referral code."},
		{"self_referral_not_allowed", "You cannot use your own referral code."},
		{"missing_refCode", "Please enter a referral code."},
		{"invalid_token", "Session expired. Please reconnect your wallet."},
		{"already_attached", "Referral already attached."},
		{"alreadyAttached", "Referral already attached."},
		{"weird_new_code", "Referral error: weird_new_code"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, MapReferralError(&Error{Code: tc.code}))
		})
	}

	assert.Equal(t, "Something went wrong.", MapReferralError(nil))
}

func TestMapCashoutError(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"min_withdraw_10", "Minimum withdrawal is 10."},
		{"max_withdraw_500", "Maximum per withdrawal is 500."},
		{"daily_cap_reached", "Daily limit reached (max 500)."},
		{"daily_limit_reached", "Daily limit reached (max 500)."},
		{"insufficient_cash", "Insufficient Career Cash Earned."},
		{"transfer_failed", "Transfer failed. Try again."},
		{"mystery", "mystery"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, MapCashoutError(&Error{Code: tc.code}))
		})
	}
}

func TestMapNicknameError(t *testing.T) {
	assert.Equal(t, "Nickname must be at least 3 characters.",
		MapNicknameError(&Error{Code: "nickname_too_short"}))
	assert.Equal(t, "Nickname must be at most 15 characters.",
		MapNicknameError(&Error{Code: "nickname_too_long"}))
	assert.Equal(t, "Nickname error: odd", MapNicknameError(&Error{Code: "odd"}))
}

func TestMaps_AcceptPlainErrors(t *testing.T) {
	// backend codes sometimes arrive as bare error strings from wrappers
	assert.Equal(t, "Invalid referral code.", MapReferralError(errors.New("invalid_refCode")))
}

func TestIsInvalidToken(t *testing.T) {
	assert.True(t, IsInvalidToken(&Error{Code: "invalid_token"}))
	assert.False(t, IsInvalidToken(&Error{Code: "other"}))
	assert.False(t, IsInvalidToken(errors.New("invalid_token")))
	assert.False(t, IsInvalidToken(nil))
}
