package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Validator verifies presented sync credentials. Validity is boolean: every
// check must pass. A malformed token, bad signature, wrong identity, unknown
// record, revocation, or expiry from either source all yield false.
type Validator struct {
	db     *gorm.DB
	appID  string
	secret []byte
	logger *zap.Logger
}

// NewValidator creates a credential validator.
func NewValidator(db *gorm.DB, appID, secret string, logger *zap.Logger) *Validator {
	return &Validator{
		db:     db,
		appID:  appID,
		secret: []byte(secret),
		logger: logger,
	}
}

// Validate checks the credential against the signature, the application
// identity, and the persisted record. The persisted expires_at is
// authoritative alongside the signed exp claim: a token whose claim is still
// live but whose record has been aged out validates false.
func (v *Validator) Validate(ctx context.Context, tokenString string) bool {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		// Decode-time expiration surfaces here as well; either way the
		// credential is simply invalid.
		v.logger.Info("Credential rejected: signature or claim verification failed", zap.Error(err))
		return false
	}

	if claims.Issuer != v.appID || !containsAudience(claims.Audience, v.appID) {
		v.logger.Info("Credential rejected: wrong application identity",
			zap.String("issuer", claims.Issuer))
		return false
	}

	var record APIToken
	result := v.db.WithContext(ctx).Where("`token` = ?", tokenString).First(&record)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		v.logger.Info("Credential rejected: not registered")
		return false
	}
	if result.Error != nil {
		v.logger.Error("Credential lookup failed", zap.Error(result.Error))
		return false
	}

	if record.Revoked {
		v.logger.Info("Credential rejected: revoked",
			zap.String("connection", record.ConnectionName))
		return false
	}

	now := time.Now().UTC()
	if !record.ExpiresAt.After(now) {
		v.logger.Info("Credential rejected: expired per server record",
			zap.String("connection", record.ConnectionName),
			zap.Time("expires_at", record.ExpiresAt))
		return false
	}

	// Best effort; a failed touch must not reject a valid credential.
	if err := v.db.WithContext(ctx).Model(&APIToken{}).
		Where("`id` = ?", record.ID).
		Update("last_used_at", now).Error; err != nil {
		v.logger.Warn("Failed to record credential use", zap.Error(err))
	}

	return true
}

func containsAudience(aud jwt.ClaimStrings, appID string) bool {
	for _, a := range aud {
		if a == appID {
			return true
		}
	}
	return false
}
