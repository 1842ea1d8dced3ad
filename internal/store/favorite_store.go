package store

import (
	"context"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteStore is the gorm-backed favorite repository.
type FavoriteStore struct {
	db *gorm.DB
}

func NewFavoriteStore(db *gorm.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

func (s *FavoriteStore) TipIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var ids []uint
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("tip_id", &ids).Error
	return ids, err
}

// Toggle deletes the (user, tip) favorite if present, otherwise inserts
// it. The insert rides on the unique (user_id, tip_id) index with
// ON CONFLICT DO NOTHING, so racing duplicate requests collapse into a
// single row instead of failing.
func (s *FavoriteStore) Toggle(ctx context.Context, userID, tipID uint) (bool, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND tip_id = ?", userID, tipID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	fav := model.Favorite{UserID: userID, TipID: tipID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoriteStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var n int64
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).Count(&n).Error
	return n, err
}
