package user

import "time"

// Session is what the API returns when an account signs in or up.
type Session struct {
	User           User  `json:"user"`
	TokenExpiresIn int64 `json:"tokenExpiresIn"`
}

// Expires returns the session cookie expiry.
func (s Session) Expires() time.Time {
	return time.Unix(s.TokenExpiresIn, 0)
}
