package handler

import (
	"context"
	"net/http"

	"github.com/heriaond/healthy-lifestyle-tips/internal/middleware"
	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/logger"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FavoriteService is the slice of the favorite service the handler needs.
type FavoriteService interface {
	Toggle(ctx context.Context, actorID, tipID uint) (bool, error)
}

// FavoriteHandler serves /api/favorites.
type FavoriteHandler struct {
	favorites FavoriteService
}

func NewFavoriteHandler(favorites FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// Toggle handles POST /api/favorites: it flips the caller's favorite on
// the given tip and reports the resulting state.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	log := logger.FromContext(c)

	actorID := middleware.ActingUserID(c)
	if actorID == nil {
		return respondError(c, service.ErrUnauthorized)
	}

	var req struct {
		TipID uint `json:"tipId"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.TipID == 0 {
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipId is required"})
	}

	favorited, err := h.favorites.Toggle(c.Request().Context(), *actorID, req.TipID)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordFavoriteToggle(favorited)
	log.Info("Favorite toggled",
		zap.Uint("tip_id", req.TipID),
		zap.Bool("favorited", favorited))
	return c.JSON(http.StatusOK, echo.Map{"favorited": favorited})
}
