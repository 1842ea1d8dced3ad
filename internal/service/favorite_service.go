package service

import (
	"context"
	"fmt"
)

// FavoriteService implements the favorite toggle.
type FavoriteService struct {
	favorites FavoriteStore
	tips      TipStore
}

func NewFavoriteService(favorites FavoriteStore, tips TipStore) *FavoriteService {
	return &FavoriteService{favorites: favorites, tips: tips}
}

// Toggle flips the actor's favorite on a tip and reports the resulting
// state: true when the favorite now exists, false when it was removed.
// The store performs the flip as a conditional write guarded by the
// (user_id, tip_id) unique constraint, so concurrent duplicate requests
// cannot produce two rows.
func (s *FavoriteService) Toggle(ctx context.Context, actorID, tipID uint) (bool, error) {
	tip, err := s.tips.Get(ctx, tipID)
	if err != nil {
		return false, fmt.Errorf("load tip: %w", err)
	}
	if tip == nil {
		return false, fmt.Errorf("%w: tip %d", ErrNotFound, tipID)
	}

	favorited, err := s.favorites.Toggle(ctx, actorID, tipID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return favorited, nil
}
