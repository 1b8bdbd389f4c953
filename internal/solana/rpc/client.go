// Package rpc is a thin Solana JSON-RPC client covering the handful of
// methods the purchase flow needs.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kudilabs/kudi-client/internal/logging"
)

// Client talks to a Solana RPC node.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        logging.Logger
}

// NewClient creates a client for the given RPC endpoint.
func NewClient(endpoint string, timeout time.Duration, log logging.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("RPC endpoint required")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

// Call issues a single JSON-RPC request and returns the raw result.
func (c *Client) Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}

// GetLatestBlockhash returns a recent blockhash usable for a new
// transaction.
func (c *Client) GetLatestBlockhash(ctx context.Context) (*LatestBlockhash, error) {
	result, err := c.Call(ctx, "getLatestBlockhash", []interface{}{
		map[string]string{"commitment": "confirmed"},
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Value LatestBlockhash `json:"value"`
	}
	if err := json.Unmarshal(result, &out); err != nil {
		return nil, err
	}
	return &out.Value, nil
}

// GetAccountInfo fetches an account. A nil result with nil error means
// the account does not exist.
func (c *Client) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	result, err := c.Call(ctx, "getAccountInfo", []interface{}{
		address,
		map[string]string{"encoding": "base64", "commitment": "confirmed"},
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Value *AccountInfo `json:"value"`
	}
	if err := json.Unmarshal(result, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// SendTransaction submits a base64-encoded signed transaction and
// returns its signature.
func (c *Client) SendTransaction(ctx context.Context, txBase64 string) (string, error) {
	result, err := c.Call(ctx, "sendTransaction", []interface{}{
		txBase64,
		map[string]interface{}{"encoding": "base64", "preflightCommitment": "confirmed"},
	})
	if err != nil {
		return "", err
	}

	var sig string
	if err := json.Unmarshal(result, &sig); err != nil {
		return "", err
	}
	c.log.Debug(ctx, "transaction submitted", "signature", sig)
	return sig, nil
}

// GetSignatureStatuses returns the processing status for the given
// signatures; entries are nil when the node has not seen the signature.
func (c *Client) GetSignatureStatuses(ctx context.Context, signatures ...string) ([]*SignatureStatus, error) {
	result, err := c.Call(ctx, "getSignatureStatuses", []interface{}{
		signatures,
		map[string]bool{"searchTransactionHistory": true},
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Value []*SignatureStatus `json:"value"`
	}
	if err := json.Unmarshal(result, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}
