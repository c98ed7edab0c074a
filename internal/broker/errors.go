package broker

import "fmt"

// AuthError indicates token issuance failed: the broker rejected the
// credentials or the auth call itself did not complete.
type AuthError struct {
	Broker string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %v", e.Broker, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError indicates a balance endpoint call failed after authentication
// succeeded. Status holds the HTTP status when the transport delivered one.
type FetchError struct {
	Broker   string
	Endpoint string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: fetch %s failed (HTTP %d): %v", e.Broker, e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: fetch %s failed: %v", e.Broker, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError indicates a 200 response whose body was structurally
// unexpected: a missing top-level field or an unparseable document.
type ParseError struct {
	Broker   string
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unexpected response from %s: %v", e.Broker, e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
