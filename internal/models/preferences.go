package models

// Preferences is a single immutable snapshot of the reactive configuration
// source. The polling engine must take a fresh snapshot at the top of every
// tick rather than holding one captured at subscription start.
type Preferences struct {
	Email           string
	Password        string
	AuthToken       string
	TokenExpiration int64
	PatientID       string
	AccountIDHash   string
}

func (p Preferences) Credentials() Credentials {
	return Credentials{Email: p.Email, Password: p.Password}
}

func (p Preferences) Session() Session {
	return Session{
		Token:         p.AuthToken,
		ExpiresAt:     p.TokenExpiration,
		AccountIDHash: p.AccountIDHash,
	}
}
