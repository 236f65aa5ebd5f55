package token

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrTokenNotFound is returned when no credential matches the given id.
var ErrTokenNotFound = errors.New("token not found")

// Service provides the administrative operations over issued credentials.
type Service struct {
	db     *gorm.DB
	issuer *Issuer
	logger *zap.Logger
}

// NewService creates the credential administration service.
func NewService(db *gorm.DB, issuer *Issuer, logger *zap.Logger) *Service {
	return &Service{db: db, issuer: issuer, logger: logger}
}

// Issuer exposes the underlying issuer for callers that only create tokens.
func (s *Service) Issuer() *Issuer {
	return s.issuer
}

// List returns all issued credentials, newest first.
func (s *Service) List(ctx context.Context) ([]APIToken, error) {
	var tokens []APIToken
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&tokens).Error; err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// ToggleRevoked flips a credential between the Active and Revoked states and
// returns the updated record.
func (s *Service) ToggleRevoked(ctx context.Context, id int) (*APIToken, error) {
	var record APIToken
	result := s.db.WithContext(ctx).Where("`id` = ?", id).First(&record)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load token %d: %w", id, result.Error)
	}

	record.Revoked = !record.Revoked
	if err := s.db.WithContext(ctx).Model(&record).Update("revoked", record.Revoked).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle token %d: %w", id, err)
	}

	s.logger.Info("Credential state changed",
		zap.Int("id", id),
		zap.String("connection", record.ConnectionName),
		zap.Bool("revoked", record.Revoked))
	return &record, nil
}

// Delete removes a credential record entirely.
func (s *Service) Delete(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Where("`id` = ?", id).Delete(&APIToken{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete token %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	s.logger.Info("Credential deleted", zap.Int("id", id))
	return nil
}
