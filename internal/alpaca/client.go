package alpaca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"relay/internal/auth"
)

// PaperBaseURL is the Alpaca paper-trading API host
const PaperBaseURL = "https://paper-api.alpaca.markets"

const ordersPath = "/v2/orders"

// Client places orders against the Alpaca REST API
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials *auth.Credentials
	logger      zerolog.Logger
}

// Option configures the client
type Option func(*Client)

// WithBaseURL overrides the API host
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Alpaca client bound to the paper-trading host
func NewClient(credentials *auth.Credentials, opts ...Option) (*Client, error) {
	if credentials == nil {
		return nil, fmt.Errorf("credentials are required")
	}

	client := &Client{
		baseURL:     PaperBaseURL,
		httpClient:  &http.Client{},
		credentials: credentials,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	return client, nil
}

// BaseURL returns the base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PlaceOrder submits a single order. Any 2xx status is success; the
// response body is logged and otherwise ignored. There are no retries.
func (c *Client) PlaceOrder(ctx context.Context, order *OrderRequest) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("place order: encode: %w", err)
	}

	c.logger.Info().
		Str("symbol", order.Symbol).
		Str("qty", order.Qty).
		Str("side", string(order.Side)).
		Str("type", string(order.Type)).
		Str("time_in_force", string(order.TimeInForce)).
		Str("limit_price", derefString(order.LimitPrice)).
		Msg("Placing order")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ordersPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("place order: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.credentials.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("place order: read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info().
			Int("status", resp.StatusCode).
			RawJSON("response", jsonOrQuoted(body)).
			Msg("Order placed successfully")
		return nil
	}

	apiErr := ParseAPIError(resp.StatusCode, body)
	c.logger.Error().
		Int("status", resp.StatusCode).
		Str("response", apiErr.Body).
		Msg("Failed to place order")
	return apiErr
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// jsonOrQuoted returns body unchanged when it is valid JSON so it nests in
// the log line, and a quoted JSON string otherwise.
func jsonOrQuoted(body []byte) []byte {
	if len(body) > 0 && json.Valid(body) {
		return body
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
