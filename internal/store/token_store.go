package store

import (
	"context"
	"errors"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"gorm.io/gorm"
)

// TokenStore is the gorm-backed verification-token repository.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Upsert replaces any prior code for the identifier with the new one,
// so at most one live code exists per email.
func (s *TokenStore) Upsert(ctx context.Context, identifier, token string, expires time.Time) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ?", identifier).Delete(&model.VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&model.VerificationToken{
			Identifier: identifier,
			Token:      token,
			Expires:    expires,
		}).Error
	})
}

func (s *TokenStore) Get(ctx context.Context, identifier, token string) (*model.VerificationToken, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var vt model.VerificationToken
	err := s.db.WithContext(ctx).
		Where("identifier = ? AND token = ?", identifier, token).
		First(&vt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vt, nil
}

func (s *TokenStore) Delete(ctx context.Context, identifier, token string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).
		Where("identifier = ? AND token = ?", identifier, token).
		Delete(&model.VerificationToken{}).Error
}
