package models

import (
	"time"
)

// Plain-text bodies returned by the relay endpoints
const (
	MessageOrderPlaced    = "Order placed successfully"
	MessageInvalidAction  = "Invalid action"
	MessageOrderFailed    = "Failed to place order"
	MessageInvalidRequest = "Invalid request body"
	MessageHealthy        = "Server is running"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(errorCode, message, requestID string) *ErrorResponse {
	return &ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}
