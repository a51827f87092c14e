package utils

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidPage         = errors.New("invalid page parameter")
	ErrInvalidPageSize     = errors.New("invalid page size parameter")
	ErrDatabaseError       = errors.New("database error")

	// Deployment faults, fatal for the request and not retryable.
	ErrMerchantConfig = errors.New("merchant credentials not configured")
	ErrGatewayConfig  = errors.New("bank API endpoint or key not configured")

	// Network or timeout talking to the bank. The caller retries by issuing
	// a new intent, not by replaying the same reference.
	ErrGatewayTransport = errors.New("failed to connect to bank API")

	// Callback rejections.
	ErrCallbackUnauthorized = errors.New("callback signature invalid")
	ErrCallbackMalformed    = errors.New("invalid callback payload")
	ErrCallbackUnmatched    = errors.New("transaction not found for callback")
)

// GatewayRejectionError wraps a 4xx-class business rejection from the bank.
// The bank's own message is carried verbatim to the caller.
type GatewayRejectionError struct {
	StatusCode int
	Message    string
}

func (e *GatewayRejectionError) Error() string {
	return fmt.Sprintf("bank API error: %s", e.Message)
}
