package domain

import "time"

// AdminSession is an issued admin credential.
type AdminSession struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewAdminSession(token, username string, ttl time.Duration) *AdminSession {
	now := time.Now()
	return &AdminSession{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *AdminSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
