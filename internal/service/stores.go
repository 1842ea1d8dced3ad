package service

import (
	"context"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/query"
)

// Store interfaces are declared here, next to their consumers, and
// implemented by the gorm stores in internal/store. Lookups that find
// nothing return (nil, nil); only infrastructure failures produce errors.

type TipStore interface {
	Count(ctx context.Context, pred query.Predicate) (int64, error)
	FindPage(ctx context.Context, pred query.Predicate, offset, limit int) ([]model.Tip, error)
	Get(ctx context.Context, id uint) (*model.Tip, error)
	Create(ctx context.Context, tip *model.Tip) error
	// Delete removes the tip and any favorites pointing at it.
	Delete(ctx context.Context, id uint) error
	CountByCategory(ctx context.Context) (map[model.Category]int64, error)
	RecentWithCreator(ctx context.Context, n int) ([]RecentTip, error)
}

type UserStore interface {
	Get(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	Count(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int) ([]model.User, error)
	ListWithCounts(ctx context.Context) ([]UserWithCounts, error)
	// DeleteCascade removes the user together with their tips, the
	// favorites on those tips, and the user's own favorites, atomically.
	DeleteCascade(ctx context.Context, id uint) error
}

type FavoriteStore interface {
	TipIDsForUser(ctx context.Context, userID uint) ([]uint, error)
	// Toggle flips the (user, tip) favorite in a single conditional
	// write guarded by the unique constraint and reports the new state.
	Toggle(ctx context.Context, userID, tipID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type TokenStore interface {
	// Upsert stores the code for the identifier, replacing any prior
	// live code for that identifier.
	Upsert(ctx context.Context, identifier, token string, expires time.Time) error
	Get(ctx context.Context, identifier, token string) (*model.VerificationToken, error)
	Delete(ctx context.Context, identifier, token string) error
}
