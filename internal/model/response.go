package model

import "encoding/json"

// Package model contains the payloads returned by the HTTP layer.
// No business logic here.

// EchoResponse is returned by the write endpoints.
// Received carries the request body exactly as parsed, re-encoded in compact form.
type EchoResponse struct {
	Message  string          `json:"message"`
	Received json.RawMessage `json:"received"`
}

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	RequestID string      `json:"request_id"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a safe message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Health is the readiness probe payload.
type Health struct {
	Status string `json:"status"`
}
