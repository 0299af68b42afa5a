package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportplus/backend/internal/observability"
	"github.com/sportplus/backend/internal/repository"
	"github.com/sportplus/backend/internal/service"
)

// AdminHandler serves the JWT-protected administrative endpoints. All
// routes using it must sit behind RequireRole("ADMIN").
type AdminHandler struct {
	Users      *repository.UserRepo
	Activities *repository.ActivityRepo
	Stats      *service.StatsService
}

func NewAdminHandler(users *repository.UserRepo, activities *repository.ActivityRepo, stats *service.StatsService) *AdminHandler {
	return &AdminHandler{Users: users, Activities: activities, Stats: stats}
}

// Overview returns the global counters shown on the admin dashboard.
func (h *AdminHandler) Overview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userCount, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count users failed"})
	}
	activityCount, err := h.Activities.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count activities failed"})
	}
	totalDistance, err := h.Activities.TotalDistance(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sum distance failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"userCount":     userCount,
		"activityCount": activityCount,
		"totalDistance": totalDistance,
	})
}

// RecalculateStats forces a recompute of one user's statistics. The
// cache is rebuilt from scratch regardless of its current state.
func (h *AdminHandler) RecalculateStats(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summary, err := h.Stats.RecomputeForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "recompute failed"})
	}
	observability.RecordStatsRecompute("write")
	return c.JSON(http.StatusOK, toStatsResp(summary))
}
