package errors

// ErrorInfo contains detailed error information attached to a response.
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "ACCOUNT_ALREADY_EXISTS"
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}

// Response is the unified error response envelope written by the error
// middleware.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
}
