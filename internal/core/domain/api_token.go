package domain

import "time"

// APIToken is a long-lived token for automation callers (schedulers,
// integrations). Only the SHA-256 hash is stored.
type APIToken struct {
	ID         string     `json:"id"` // Primary Key (UUID)
	UserID     string     `json:"userID"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	AuditFields
}

// IsExpired reports whether the token has an expiry in the past.
func (t APIToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}
