package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/heriaond/healthy-lifestyle-tips/internal/middleware"
	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/logger"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminService is the slice of the admin service the handler needs.
type AdminService interface {
	GetStats(ctx context.Context, actorID uint) (*service.StatsResult, error)
	ListUsers(ctx context.Context, actorID uint) ([]service.UserWithCounts, error)
	ToggleRole(ctx context.Context, actorID, userID uint) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, userID uint) error
}

// AdminHandler serves /api/admin.
type AdminHandler struct {
	admin AdminService
}

func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	actorID := middleware.ActingUserID(c)
	if actorID == nil {
		return respondError(c, service.ErrUnauthorized)
	}

	result, err := h.admin.GetStats(c.Request().Context(), *actorID)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordAdminOperation("stats")
	return c.JSON(http.StatusOK, result)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	actorID := middleware.ActingUserID(c)
	if actorID == nil {
		return respondError(c, service.ErrUnauthorized)
	}

	users, err := h.admin.ListUsers(c.Request().Context(), *actorID)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordAdminOperation("list_users")
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// ToggleRole handles PATCH /api/admin/users/:id: it flips the user
// between the user and admin roles.
func (h *AdminHandler) ToggleRole(c echo.Context) error {
	log := logger.FromContext(c)

	actorID := middleware.ActingUserID(c)
	if actorID == nil {
		return respondError(c, service.ErrUnauthorized)
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	user, err := h.admin.ToggleRole(c.Request().Context(), *actorID, uint(userID))
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordAdminOperation("toggle_role")
	log.Info("User role toggled",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)

	actorID := middleware.ActingUserID(c)
	if actorID == nil {
		return respondError(c, service.ErrUnauthorized)
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	if err := h.admin.DeleteUser(c.Request().Context(), *actorID, uint(userID)); err != nil {
		return respondError(c, err)
	}

	prometheus.RecordAdminOperation("delete_user")
	log.Info("User deleted", zap.Uint64("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
