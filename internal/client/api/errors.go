package api

import (
	"errors"
	"fmt"
)

// CodeInvalidToken signals session expiry; callers should prompt for
// re-authentication when they see it.
const CodeInvalidToken = "invalid_token"

// Error is a failure reported by the backend (or the transport in front of
// it). Code carries the server's structured error field when one was
// present; Message falls back to the message field, the raw body, or a
// generic HTTP-status string, in that order.
type Error struct {
	Status  int
	Code    string
	Message string

	// Raw is the unparsed response body, kept so callers can extract
	// code-specific payload fields (e.g. the avatar store's needMore).
	Raw []byte
}

func (e *Error) Error() string {
	if e.Code != "" {
		return e.Code
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// IsInvalidToken reports whether err is a backend invalid_token error.
func IsInvalidToken(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeInvalidToken
}

// errCode extracts the server code from an error for translation; a plain
// error's text is treated as the code, matching how the backend surfaces
// bare code strings.
func errCode(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

// MapReferralError translates referral attach failure codes to user-facing
// text. Unknown codes are surfaced raw so new backend codes stay visible.
func MapReferralError(err error) string {
	switch c := errCode(err); c {
	case "":
		return "Something went wrong."
	case "invalid_refCode":
		return "Invalid referral code."
	case "self_referral_not_allowed":
		return "You cannot use your own referral code."
	case "missing_refCode":
		return "Please enter a referral code."
	case CodeInvalidToken:
		return "Session expired. Please reconnect your wallet."
	case "already_attached", "alreadyAttached":
		return "Referral already attached."
	default:
		return "Referral error: " + c
	}
}

// MapCashoutError translates cashout failure codes.
func MapCashoutError(err error) string {
	switch c := errCode(err); c {
	case "":
		return "Something went wrong."
	case "missing_amount":
		return "Enter an amount."
	case "invalid_amount":
		return "Invalid amount."
	case "min_withdraw_10":
		return "Minimum withdrawal is 10."
	case "max_withdraw_500":
		return "Maximum per withdrawal is 500."
	case "daily_cap_reached", "daily_limit_reached":
		return "Daily limit reached (max 500)."
	case "insufficient_cash":
		return "Insufficient Career Cash Earned."
	case CodeInvalidToken:
		return "Session expired. Please reconnect wallet."
	case "transfer_failed":
		return "Transfer failed. Try again."
	default:
		return c
	}
}

// MapNicknameError translates nickname failure codes.
func MapNicknameError(err error) string {
	switch c := errCode(err); c {
	case "":
		return "Something went wrong."
	case "missing_nickname":
		return "Enter a nickname."
	case "nickname_too_short":
		return "Nickname must be at least 3 characters."
	case "nickname_too_long":
		return "Nickname must be at most 15 characters."
	case CodeInvalidToken:
		return "Session expired. Please reconnect wallet."
	default:
		return "Nickname error: " + c
	}
}
