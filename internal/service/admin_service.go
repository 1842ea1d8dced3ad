package service

import (
	"context"
	"fmt"
	"time"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
)

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	TotalUsers     int64                    `json:"totalUsers"`
	TotalTips      int64                    `json:"totalTips"`
	TotalFavorites int64                    `json:"totalFavorites"`
	AdminCount     int64                    `json:"adminCount"`
	CategoryStats  map[model.Category]int64 `json:"categoryStats"`
}

// StatsResult is the full admin stats payload.
type StatsResult struct {
	Stats       Stats        `json:"stats"`
	RecentUsers []model.User `json:"recentUsers"`
	RecentTips  []RecentTip  `json:"recentTips"`
}

// RecentTip is a tip row joined with its creator's email for the
// dashboard.
type RecentTip struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	Category       model.Category `json:"category"`
	CreatedAt      time.Time      `json:"created_at"`
	CreatedByEmail *string        `json:"created_by_email,omitempty"`
}

// UserWithCounts is a user row with per-user tip and favorite totals.
type UserWithCounts struct {
	model.User
	TipCount      int64 `json:"tipCount"`
	FavoriteCount int64 `json:"favoriteCount"`
}

// AdminService implements the admin dashboard operations. Every method
// re-checks the actor's role against the store so a stale session token
// can never keep admin access after a role change.
type AdminService struct {
	users     UserStore
	tips      TipStore
	favorites FavoriteStore
}

func NewAdminService(users UserStore, tips TipStore, favorites FavoriteStore) *AdminService {
	return &AdminService{users: users, tips: tips, favorites: favorites}
}

func (s *AdminService) requireAdmin(ctx context.Context, actorID uint) error {
	actor, err := s.users.Get(ctx, actorID)
	if err != nil {
		return fmt.Errorf("load actor: %w", err)
	}
	if actor == nil || !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

// GetStats returns aggregate counts plus the five most recent users and
// tips.
func (s *AdminService) GetStats(ctx context.Context, actorID uint) (*StatsResult, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	adminCount, err := s.users.CountAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	categoryStats, err := s.tips.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tips by category: %w", err)
	}
	var totalTips int64
	for _, n := range categoryStats {
		totalTips += n
	}
	totalFavorites, err := s.favorites.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}
	recentUsers, err := s.users.Recent(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("list recent users: %w", err)
	}
	recentTips, err := s.tips.RecentWithCreator(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("list recent tips: %w", err)
	}

	return &StatsResult{
		Stats: Stats{
			TotalUsers:     totalUsers,
			TotalTips:      totalTips,
			TotalFavorites: totalFavorites,
			AdminCount:     adminCount,
			CategoryStats:  categoryStats,
		},
		RecentUsers: recentUsers,
		RecentTips:  recentTips,
	}, nil
}

// ListUsers returns all users, newest first, with their tip and
// favorite counts.
func (s *AdminService) ListUsers(ctx context.Context, actorID uint) ([]UserWithCounts, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	users, err := s.users.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ToggleRole flips a user between the user and admin roles.
func (s *AdminService) ToggleRole(ctx context.Context, actorID, userID uint) (*model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	if user.IsAdmin() {
		user.Role = model.RoleUser
	} else {
		user.Role = model.RoleAdmin
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user and everything they own: their tips, the
// favorites on those tips, and their own favorites.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID uint) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	if err := s.users.DeleteCascade(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
