package models

import "time"

// Credentials are opaque user secrets. They are persisted as preference
// values only and must never appear in log output.
type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Complete() bool {
	return c.Email != "" && c.Password != ""
}

// Session is an immutable authenticated-session value. AccountIDHash is the
// SHA-256 hex digest of the vendor account id; the raw id is never stored.
type Session struct {
	Token         string
	ExpiresAt     int64 // epoch seconds
	AccountIDHash string
}

// Valid reports whether the session can be used for requests. An expired
// session must trigger re-authentication, never a request.
func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && s.AccountIDHash != "" && now.Unix() < s.ExpiresAt
}
