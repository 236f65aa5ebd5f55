package token

import "time"

// APIToken is one issued sync credential in the 'api_tokens' table. The
// signed token string is the lookup key during validation; ExpiresAt and
// Revoked are the server-side revocation controls, editable independently of
// the signed claims.
type APIToken struct {
	ID             int        `gorm:"column:id;primaryKey"`
	ConnectionName string     `gorm:"column:connection_name;size:50"`
	Token          string     `gorm:"column:token;size:255;uniqueIndex;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ExpiresAt      time.Time  `gorm:"column:expires_at;not null"`
	Revoked        bool       `gorm:"column:revoked;default:false"`
	LastUsedAt     *time.Time `gorm:"column:last_used_at"`
}

// TableName overrides the table name for APIToken.
func (APIToken) TableName() string {
	return "api_tokens"
}

// Status reports the credential state as a closed set of strings for
// transport. Revocation dominates expiry.
func (t *APIToken) Status(now time.Time) string {
	switch {
	case t.Revoked:
		return "revoked"
	case !t.ExpiresAt.After(now):
		return "expired"
	default:
		return "active"
	}
}
