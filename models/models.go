package models

import "time"

// AdminRecord is the single stored administrator identity.
type AdminRecord struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionFlag marks an active admin session. It expires lazily, when read.
type SessionFlag struct {
	Authenticated bool      `json:"authenticated"`
	SessionStart  time.Time `json:"sessionStartTime"`
}

// Age reports how long the session has been open at now.
func (f SessionFlag) Age(now time.Time) time.Duration {
	return now.Sub(f.SessionStart)
}
