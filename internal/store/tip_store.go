package store

import (
	"context"
	"errors"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/query"
	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"gorm.io/gorm"
)

// TipStore is the gorm-backed tip repository.
type TipStore struct {
	db *gorm.DB
}

func NewTipStore(db *gorm.DB) *TipStore {
	return &TipStore{db: db}
}

func (s *TipStore) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	sql, args := pred.SQL()
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Tip{}).Where(sql, args...).Count(&n).Error
	return n, err
}

func (s *TipStore) FindPage(ctx context.Context, pred query.Predicate, offset, limit int) ([]model.Tip, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	sql, args := pred.SQL()
	var tips []model.Tip
	err := s.db.WithContext(ctx).
		Where(sql, args...).
		Order(query.OrderNewestFirst).
		Offset(offset).
		Limit(limit).
		Find(&tips).Error
	return tips, err
}

func (s *TipStore) Get(ctx context.Context, id uint) (*model.Tip, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tip model.Tip
	err := s.db.WithContext(ctx).First(&tip, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

func (s *TipStore) Create(ctx context.Context, tip *model.Tip) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(tip).Error
}

// Delete removes the tip and the favorites pointing at it in one
// transaction.
func (s *TipStore) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tip_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tip{}, id).Error
	})
}

func (s *TipStore) CountByCategory(ctx context.Context) (map[model.Category]int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var rows []struct {
		Category model.Category
		Count    int64
	}
	err := s.db.WithContext(ctx).Model(&model.Tip{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[model.Category]int64, len(rows))
	for _, r := range rows {
		stats[r.Category] = r.Count
	}
	return stats, nil
}

func (s *TipStore) RecentWithCreator(ctx context.Context, n int) ([]service.RecentTip, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tips []service.RecentTip
	err := s.db.WithContext(ctx).Model(&model.Tip{}).
		Select("tips.id, tips.title, tips.category, tips.created_at, users.email as created_by_email").
		Joins("LEFT JOIN users ON users.id = tips.created_by_id").
		Order("tips.created_at DESC, tips.id DESC").
		Limit(n).
		Scan(&tips).Error
	return tips, err
}
