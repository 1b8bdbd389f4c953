package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kudilabs/kudi-client/internal/client/session"
	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/logging"
)

const maxResponseBytes = 8 << 20

// HTTPClient implements Client over the backend's JSON HTTP API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	log        logging.Logger
}

// NewHTTPClient builds a client for the given base URL (trailing slash
// stripped). The session store provides the X-Session-Id value and the
// bearer token, and adopts server-directed session ids during resync.
func NewHTTPClient(baseURL string, timeout time.Duration, sessions *session.Store, log logging.Logger) *HTTPClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		sessions:   sessions,
		log:        log,
	}
}

// attemptOutcome tags the result of a single request attempt: the resync
// protocol is an explicit two-attempt loop, not hidden recursion.
type attemptOutcome int

const (
	attemptSuccess attemptOutcome = iota
	attemptSessionStale
	attemptFailure
)

type attemptResult struct {
	outcome attemptOutcome
	body    []byte
	newSID  string
	err     error
}

// do executes method path with an optional JSON body, decoding the response
// into out. A 409 response carrying expectedSessionId makes the client
// adopt the expected session id and retry the identical request exactly
// once; a second stale response is surfaced as a hard failure.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	for i := 0; i < 2; i++ {
		res := c.attempt(ctx, method, path, payload)

		switch res.outcome {
		case attemptSuccess:
			return c.decodeInto(ctx, res.body, out)

		case attemptSessionStale:
			if i > 0 || res.newSID == "" {
				return res.err
			}
			if res.newSID != c.sessions.SessionID() {
				c.sessions.SetSessionID(res.newSID)
			}
			c.log.Debug(ctx, "session resync, retrying request", "path", path, "sid", res.newSID)

		default:
			return res.err
		}
	}

	// unreachable: the second iteration always returns
	return &Error{Status: http.StatusConflict, Message: "session resync failed"}
}

func (c *HTTPClient) attempt(ctx context.Context, method, path string, payload []byte) attemptResult {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return attemptResult{outcome: attemptFailure, err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set(common.SessionIDHeaderName, c.sessions.SessionID())
	if bearer := c.sessions.Bearer(ctx); bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+bearer)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return attemptResult{outcome: attemptFailure, err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return attemptResult{outcome: attemptFailure, err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode == http.StatusConflict {
		var stale struct {
			ExpectedSessionID string `json:"expectedSessionId"`
		}
		if json.Unmarshal(body, &stale) == nil && stale.ExpectedSessionID != "" {
			return attemptResult{
				outcome: attemptSessionStale,
				newSID:  stale.ExpectedSessionID,
				err:     parseError(resp.StatusCode, body),
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return attemptResult{outcome: attemptFailure, err: parseError(resp.StatusCode, body)}
	}

	return attemptResult{outcome: attemptSuccess, body: body}
}

// decodeInto unmarshals a success body into out. Non-JSON success bodies
// are tolerated (treated as an empty payload) to match the backend's
// occasional plain-text replies.
func (c *HTTPClient) decodeInto(ctx context.Context, body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.log.Debug(ctx, "non-JSON success body ignored", "error", err)
	}
	return nil
}

// parseError builds an *Error from a non-success response: structured
// error field first, then message, then the raw body, then the status.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Raw: append([]byte(nil), body...)}

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		apiErr.Code = parsed.Error
		apiErr.Message = parsed.Message
	}
	if apiErr.Code == "" && apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
