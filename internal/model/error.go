package model

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

const (
	ErrMissingWallet = "Missing wallet"
	ErrInvalidWallet = "Invalid wallet"
)

// ValidationError is returned for request input rejected before any subprocess runs.
// It doubles as the 400 response body.
type ValidationError struct {
	Message string `json:"error"`
	// Wallet echoes the rejected value: a json.RawMessage from a JSON body, a string otherwise
	Wallet any `json:"wallet,omitempty" swaggertype:"string"`
}

func (e *ValidationError) Error() string {
	switch w := e.Wallet.(type) {
	case nil:
		return e.Message
	case json.RawMessage:
		return e.Message + ": " + string(w)
	default:
		return fmt.Sprintf("%s: %v", e.Message, w)
	}
}
