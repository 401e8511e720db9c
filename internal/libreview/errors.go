package libreview

import "fmt"

// AuthError means the vendor rejected the login or the session headers.
// It carries the vendor's message when one was returned.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "libreview: authentication failed"
	}
	return "libreview: authentication failed: " + e.Message
}

// StatusError is a non-OK HTTP status from the vendor that is not an
// authentication failure. Transient by policy: the engine retries on the
// next tick.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("libreview: %s returned status %d", e.Endpoint, e.Code)
}
