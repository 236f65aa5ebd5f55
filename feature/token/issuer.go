package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Issuance failure markers. Callers branch on these rather than on
// exceptions; an invalid expiration is a caller error, not a server fault.
var (
	ErrExpirationNotFuture = errors.New("expiration date must be in the future")
	ErrExpirationTooFar    = errors.New("expiration date exceeds the maximum validity window")
)

// Issuer creates signed, time-bounded sync credentials tied to the
// application identity and persists them for later revocation checks.
type Issuer struct {
	db              *gorm.DB
	appID           string
	secret          []byte
	maxValidityDays int
	logger          *zap.Logger
}

// NewIssuer creates a credential issuer.
func NewIssuer(db *gorm.DB, appID, secret string, maxValidityDays int, logger *zap.Logger) *Issuer {
	return &Issuer{
		db:              db,
		appID:           appID,
		secret:          []byte(secret),
		maxValidityDays: maxValidityDays,
		logger:          logger,
	}
}

// Issue signs a new HS256 credential expiring at expiration and persists it
// as an APIToken. The connection name is descriptive metadata stored with
// the record, not a signed claim.
func (i *Issuer) Issue(ctx context.Context, expiration time.Time, connectionName string) (*APIToken, error) {
	now := time.Now().UTC()
	if !expiration.After(now) {
		return nil, ErrExpirationNotFuture
	}
	if i.maxValidityDays > 0 && expiration.After(now.AddDate(0, 0, i.maxValidityDays)) {
		return nil, ErrExpirationTooFar
	}

	claims := jwt.RegisteredClaims{
		Issuer:    i.appID,
		Audience:  jwt.ClaimStrings{i.appID},
		ExpiresAt: jwt.NewNumericDate(expiration),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign credential: %w", err)
	}

	record := &APIToken{
		ConnectionName: connectionName,
		Token:          signed,
		CreatedAt:      now,
		ExpiresAt:      expiration,
		Revoked:        false,
	}
	if err := i.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to persist credential: %w", err)
	}

	i.logger.Info("Credential issued",
		zap.String("connection", connectionName),
		zap.Time("expires_at", expiration))
	return record, nil
}
