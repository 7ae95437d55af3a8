package utils

// Application constants
const (
	// Application name
	AppName = "paycode-webhook"

	// Header carrying the request ID
	RequestIDHeader = "X-Request-ID"

	// Context key for the request ID
	RequestIDKey = "RequestID"
)

// Error messages
const (
	ErrNoPaymentFound = "No payment found"
	ErrServerError    = "Server error"
)
