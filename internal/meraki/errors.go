package meraki

import "fmt"

// APIError is a non-2xx dashboard response, or a 2xx response whose body
// could not be decoded into the expected shape. Body is kept verbatim for
// diagnostics.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("dashboard API: %s", e.Message)
	}
	return fmt.Sprintf("dashboard API: status %d: %s", e.StatusCode, e.Body)
}

// NetworkError is a transport-level failure: connection refused, DNS,
// timeout. The underlying error is preserved for errors.Is/As.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("dashboard API: transport: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
