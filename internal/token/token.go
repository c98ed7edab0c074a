package token

import "time"

// ExpiryBuffer is subtracted from a token's advertised lifetime so renewal
// happens well before the broker-side expiry. Requests issued at the edge
// of expiry fail intermittently; the buffer forces early rotation.
const ExpiryBuffer = 300 * time.Second

// Token is a cached broker access token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the token can still be used at the given instant.
func (t Token) Valid(now time.Time) bool {
	return t.Value != "" && t.ExpiresAt.After(now)
}
