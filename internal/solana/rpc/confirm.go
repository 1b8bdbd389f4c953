package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/kudilabs/kudi-client/internal/common"
)

const (
	confirmPollInterval = 2 * time.Second
	confirmMaxWait      = 90 * time.Second
)

// WaitForConfirmation polls the signature status until the transaction
// reaches the confirmed commitment level. Returns
// common.ErrConfirmationFailed when the transaction was processed with
// an error, and a deadline error when it never lands within the window.
func (c *Client) WaitForConfirmation(ctx context.Context, signature string) error {
	backoff := retry.WithMaxDuration(confirmMaxWait, retry.NewConstant(confirmPollInterval))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		statuses, err := c.GetSignatureStatuses(ctx, signature)
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(statuses) == 0 || statuses[0] == nil {
			return retry.RetryableError(fmt.Errorf("signature %s not yet observed", signature))
		}
		status := statuses[0]
		if status.Failed() {
			return fmt.Errorf("%w: transaction %s failed on chain: %s",
				common.ErrConfirmationFailed, signature, status.Err)
		}
		if !status.Confirmed() {
			return retry.RetryableError(fmt.Errorf("signature %s still processing", signature))
		}
		c.log.Debug(ctx, "transaction confirmed", "signature", signature, "slot", status.Slot)
		return nil
	})
}
