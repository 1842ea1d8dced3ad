package store

import (
	"context"
	"errors"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"gorm.io/gorm"
)

// UserStore is the gorm-backed user repository.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(ctx context.Context, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserStore) Save(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Save(user).Error
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var n int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

func (s *UserStore) CountAdmins(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var n int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&n).Error
	return n, err
}

func (s *UserStore) Recent(ctx context.Context, n int) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var users []model.User
	err := s.db.WithContext(ctx).Order("id DESC").Limit(n).Find(&users).Error
	return users, err
}

func (s *UserStore) ListWithCounts(ctx context.Context) ([]service.UserWithCounts, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var users []service.UserWithCounts
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Select(`users.*,
			(SELECT count(*) FROM tips WHERE tips.created_by_id = users.id AND tips.deleted_at IS NULL) AS tip_count,
			(SELECT count(*) FROM favorites WHERE favorites.user_id = users.id) AS favorite_count`).
		Order("users.id DESC").
		Scan(&users).Error
	return users, err
}

// DeleteCascade removes the user, their tips, the favorites on those
// tips, and their own favorites, atomically. The user row is removed
// for real, not soft-deleted: a soft-deleted row would keep occupying
// the unique email index and block that address from ever signing in
// again.
func (s *UserStore) DeleteCascade(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tip_id IN (?)",
			tx.Model(&model.Tip{}).Select("id").Where("created_by_id = ?", id),
		).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("created_by_id = ?", id).Delete(&model.Tip{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.User{}, id).Error
	})
}
