package service

import (
	"context"
	"fmt"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/query"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/validate"
)

// SearchResult is a page of tips plus the acting user's complete
// favorited-tip-id set, which is independent of the page window.
type SearchResult struct {
	Tips         []model.Tip `json:"tips"`
	Total        int64       `json:"total"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"totalPages"`
	HasMore      bool        `json:"hasMore"`
	FavoritedIDs []uint      `json:"favoritedIds"`
}

// CreateTipRequest carries the validated create-tip payload.
type CreateTipRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=500"`
	Category    string `json:"category" validate:"required"`
}

// TipService implements tip search and the tip mutations.
type TipService struct {
	tips      TipStore
	users     UserStore
	favorites FavoriteStore
}

func NewTipService(tips TipStore, users UserStore, favorites FavoriteStore) *TipService {
	return &TipService{tips: tips, users: users, favorites: favorites}
}

// Search composes the filter predicate, counts matches, and fetches the
// requested page, newest first. The count and page queries are
// independent reads with no shared snapshot; under concurrent writes
// they may disagree, which callers accept in exchange for not holding a
// transaction open. Read-only and safe to retry. Assumes Page and Limit
// were already clamped at the boundary.
func (s *TipService) Search(ctx context.Context, params query.Params, actingUserID *uint) (*SearchResult, error) {
	// Never nil: the response always carries a JSON array, even for
	// anonymous callers and users with no favorites.
	favoriteIDs := []uint{}
	if actingUserID != nil {
		ids, err := s.favorites.TipIDsForUser(ctx, *actingUserID)
		if err != nil {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		if ids != nil {
			favoriteIDs = ids
		}
	}

	pred := query.Build(params, actingUserID, favoriteIDs)

	total, err := s.tips.Count(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("count tips: %w", err)
	}

	tips, err := s.tips.FindPage(ctx, pred, query.Offset(params.Page, params.Limit), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch tips page: %w", err)
	}
	if tips == nil {
		tips = []model.Tip{}
	}

	totalPages := query.TotalPages(total, params.Limit)
	return &SearchResult{
		Tips:         tips,
		Total:        total,
		Page:         params.Page,
		TotalPages:   totalPages,
		HasMore:      query.HasMore(params.Page, totalPages),
		FavoritedIDs: favoriteIDs,
	}, nil
}

// Create validates the payload and persists a new tip owned by the actor.
func (s *TipService) Create(ctx context.Context, actorID uint, req CreateTipRequest) (*model.Tip, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !model.ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	tip := &model.Tip{
		Category:    model.Category(req.Category),
		Title:       req.Title,
		Description: req.Description,
		CreatedByID: &actorID,
	}
	if err := s.tips.Create(ctx, tip); err != nil {
		return nil, fmt.Errorf("create tip: %w", err)
	}
	return tip, nil
}

// Delete removes a tip if the actor created it or holds the admin role.
// The actor's role is read fresh from the store rather than trusted from
// the session.
func (s *TipService) Delete(ctx context.Context, actorID, tipID uint) error {
	tip, err := s.tips.Get(ctx, tipID)
	if err != nil {
		return fmt.Errorf("load tip: %w", err)
	}
	if tip == nil {
		return fmt.Errorf("%w: tip %d", ErrNotFound, tipID)
	}

	actor, err := s.users.Get(ctx, actorID)
	if err != nil {
		return fmt.Errorf("load actor: %w", err)
	}
	isCreator := tip.CreatedByID != nil && *tip.CreatedByID == actorID
	if !isCreator && (actor == nil || !actor.IsAdmin()) {
		return fmt.Errorf("%w: not the creator or an admin", ErrForbidden)
	}

	if err := s.tips.Delete(ctx, tipID); err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}
	return nil
}
