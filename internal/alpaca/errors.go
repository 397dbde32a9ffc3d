package alpaca

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the Alpaca API
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Body       string `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("alpaca API error: HTTP %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("alpaca API error: HTTP %d: %s", e.StatusCode, e.Body)
}

// ParseAPIError builds an APIError from a failed response. Alpaca error
// bodies look like {"code":40310000,"message":"insufficient buying power"};
// anything else is kept verbatim in Body.
func ParseAPIError(statusCode int, body []byte) *APIError {
	bodyStr := strings.TrimSpace(string(body))
	if bodyStr == "" {
		bodyStr = "empty response"
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       bodyStr,
	}

	var parsed struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Message
	}

	return apiErr
}

// AsAPIError extracts an APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
