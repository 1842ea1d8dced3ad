package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/heriaond/healthy-lifestyle-tips/internal/middleware"
	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/query"
	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/logger"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// maxPageSize bounds the page size a caller may request.
const maxPageSize = 50

// TipService is the slice of the tip service the handler needs.
type TipService interface {
	Search(ctx context.Context, params query.Params, actingUserID *uint) (*service.SearchResult, error)
	Create(ctx context.Context, actorID uint, req service.CreateTipRequest) (*model.Tip, error)
	Delete(ctx context.Context, actorID, tipID uint) error
}

// TipHandler serves /api/tips.
type TipHandler struct {
	tips TipService
}

func NewTipHandler(tips TipService) *TipHandler {
	return &TipHandler{tips: tips}
}

// Search handles GET /api/tips with filter, search, and pagination
// query parameters.
func (h *TipHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.TipSearchCounter.Inc()

	params, err := parseSearchParams(c)
	if err != nil {
		log.Warn("Invalid search parameters", zap.Error(err))
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	actingUserID := middleware.ActingUserID(c)
	result, err := h.tips.Search(c.Request().Context(), params, actingUserID)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Tips searched",
		zap.Int64("total", result.Total),
		zap.Int("page", result.Page),
		zap.Int("returned", len(result.Tips)))
	return c.JSON(http.StatusOK, result)
}

// Create handles POST /api/tips.
func (h *TipHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	actorID := middleware.ActingUserID(c)
	if actorID == nil {
		return respondError(c, service.ErrUnauthorized)
	}

	var req service.CreateTipRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tip, err := h.tips.Create(c.Request().Context(), *actorID, req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordTipOperation("create")
	log.Info("Tip created",
		zap.Uint("tip_id", tip.ID),
		zap.String("category", string(tip.Category)))
	return c.JSON(http.StatusCreated, echo.Map{"tip": tip})
}

// Delete handles DELETE /api/tips/:id.
func (h *TipHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	actorID := middleware.ActingUserID(c)
	if actorID == nil {
		return respondError(c, service.ErrUnauthorized)
	}

	tipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tip id"})
	}

	if err := h.tips.Delete(c.Request().Context(), *actorID, uint(tipID)); err != nil {
		return respondError(c, err)
	}

	prometheus.RecordTipOperation("delete")
	log.Info("Tip deleted", zap.Uint64("tip_id", tipID))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// parseSearchParams reads and validates the GET /api/tips query
// parameters, applying defaults and clamping the page window.
func parseSearchParams(c echo.Context) (query.Params, error) {
	params := query.DefaultParams()
	params.Search = c.QueryParam("search")

	if raw := c.QueryParam("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !model.ValidCategory(part) {
				return params, fmt.Errorf("unknown category: %s", part)
			}
			params.Categories = append(params.Categories, model.Category(part))
		}
	}

	if raw := c.QueryParam("searchIn"); raw != "" {
		if !query.ValidSearchIn(raw) {
			return params, fmt.Errorf("unknown searchIn: %s", raw)
		}
		params.SearchIn = query.SearchIn(raw)
	}

	params.ShowFavorites = c.QueryParam("favorites") == "true"
	params.ShowMyTips = c.QueryParam("myTips") == "true"

	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			params.Page = page
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}

	return params, nil
}
