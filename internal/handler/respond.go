package handler

import (
	"errors"
	"net/http"

	"github.com/heriaond/healthy-lifestyle-tips/internal/service"
	"github.com/heriaond/healthy-lifestyle-tips/pkg/logger"
	"github.com/heriaond/healthy-lifestyle-tips/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps a service error onto an HTTP response. Validation
// and authorization failures carry their specific reason; anything
// unrecognised is an internal failure and returns an opaque message so
// store details never reach the caller.
func respondError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		prometheus.RecordAPIError("unauthorized")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		prometheus.RecordAPIError("forbidden")
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		prometheus.RecordAPIError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrCodeExpired):
		prometheus.RecordAPIError("validation")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	log.Error("Internal error", zap.Error(err))
	prometheus.RecordAPIError("internal")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
