package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cryptotrack/crypto-tracker/internal/model"
)

// Per-operation deadlines. Add and remove carry no client-side deadline
// because the backend runs an upstream symbol lookup before answering.
const (
	ListTimeout   = 10 * time.Second
	SearchTimeout = 5 * time.Second
	PingTimeout   = 5 * time.Second
)

// RequestIDHeader carries a UUID per request for correlating backend logs
const RequestIDHeader = "X-Request-ID"

// pingStatusOK is the sentinel value the backend reports when healthy
const pingStatusOK = "ok"

// Client talks to the dashboard backend over HTTP. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client for baseURL, e.g. "http://localhost:5000/api".
// Deadlines are applied per call, not on the shared http.Client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

type pingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type addResponse struct {
	Message        string   `json:"message"`
	TrackedCryptos []string `json:"tracked_cryptos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Ping probes backend availability. Only a success reply whose body carries
// the {"status":"ok"} sentinel counts as reachable; anything else is an error.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	body, status, err := c.get(ctx, "ping", c.baseURL+"/ping")
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return newServerError("ping", status, body)
	}

	var pr pingResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return &RequestError{Op: "ping", Kind: KindUnexpected, StatusCode: status, Err: err}
	}
	if pr.Status != pingStatusOK {
		return &RequestError{
			Op:         "ping",
			Kind:       KindUnexpected,
			StatusCode: status,
			Message:    fmt.Sprintf("unexpected ping status %q", pr.Status),
		}
	}
	return nil
}

// FetchCoins retrieves the tracked coin list. When the backend reports an
// error status but the body still decodes as a coin array, the coins are
// returned together with ErrFallbackData so callers can render them as
// degraded data instead of failing outright.
func (c *Client) FetchCoins(ctx context.Context) ([]model.Coin, error) {
	ctx, cancel := context.WithTimeout(ctx, ListTimeout)
	defer cancel()

	body, status, err := c.get(ctx, "list", c.baseURL+"/cryptocurrencies")
	if err != nil {
		return nil, err
	}

	var coins []model.Coin
	if !isSuccess(status) {
		if unmarshalErr := json.Unmarshal(body, &coins); unmarshalErr == nil && coins != nil {
			log.Printf("List returned status %d with a coin array, keeping %d coins as fallback", status, len(coins))
			return coins, ErrFallbackData
		}
		return nil, newServerError("list", status, body)
	}

	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, &RequestError{Op: "list", Kind: KindUnexpected, StatusCode: status, Err: err}
	}
	return coins, nil
}

// Search asks the backend for coins matching query. The raw candidate list
// is returned as-is; substring filtering and capping happen on the caller
// side.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, SearchTimeout)
	defer cancel()

	body, status, err := c.get(ctx, "search", c.baseURL+"/cryptocurrency/search/"+url.PathEscape(query))
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, newServerError("search", status, body)
	}

	var results []model.SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &RequestError{Op: "search", Kind: KindUnexpected, StatusCode: status, Err: err}
	}
	return results, nil
}

// Add asks the backend to start tracking symbol and returns its confirmation
// message.
func (c *Client) Add(ctx context.Context, symbol string) (string, error) {
	body, status, err := c.get(ctx, "add", c.baseURL+"/cryptocurrency/add/"+url.PathEscape(symbol))
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", newServerError("add", status, body)
	}

	var ar addResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		// A success status with an unreadable body is still a success;
		// only the confirmation text is lost.
		log.Printf("Add %s succeeded with unparsable body: %v", symbol, err)
		return "", nil
	}
	return ar.Message, nil
}

// Remove asks the backend to stop tracking symbol and returns its
// confirmation message. Default coins are refused by the backend with a 400.
func (c *Client) Remove(ctx context.Context, symbol string) (string, error) {
	body, status, err := c.get(ctx, "remove", c.baseURL+"/cryptocurrency/remove/"+url.PathEscape(symbol))
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", newServerError("remove", status, body)
	}

	var ar addResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		log.Printf("Remove %s succeeded with unparsable body: %v", symbol, err)
		return "", nil
	}
	return ar.Message, nil
}

// get performs one GET round trip and returns the raw body and status code.
// Failures before a response arrives are classified into a *RequestError.
func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, &RequestError{Op: op, Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, classify(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, classify(op, err)
	}
	return body, resp.StatusCode, nil
}

// newServerError builds a server-kind error, extracting the backend's
// {"error": "..."} message when the body carries one.
func newServerError(op string, status int, body []byte) *RequestError {
	var er errorResponse
	_ = json.Unmarshal(body, &er)
	return &RequestError{Op: op, Kind: KindServer, StatusCode: status, Message: er.Error}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
