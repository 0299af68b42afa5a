package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportplus/backend/internal/gpx"
	"github.com/sportplus/backend/internal/model"
	"github.com/sportplus/backend/internal/observability"
	"github.com/sportplus/backend/internal/queue"
	"github.com/sportplus/backend/internal/ranking"
	"github.com/sportplus/backend/internal/repository"
	"github.com/sportplus/backend/internal/service"
)

// ActivityHandler bundles dependencies for the activity CRUD, stats,
// ranking and export endpoints.
type ActivityHandler struct {
	Activities *repository.ActivityRepo
	Stats      *service.StatsService
}

func NewActivityHandler(activities *repository.ActivityRepo, stats *service.StatsService) *ActivityHandler {
	return &ActivityHandler{Activities: activities, Stats: stats}
}

// ----- DTOs -----

type activityReq struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Duration     float64  `json:"duration"`
	Distance     float64  `json:"distance"`
	Pace         *float64 `json:"pace"`
	AverageSpeed *float64 `json:"averageSpeed"`
	GpsTrack     *string  `json:"gpsTrack"`
	Note         *string  `json:"note"`
}

type activityResp struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"userId"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Duration     float64   `json:"duration"`
	Distance     float64   `json:"distance"`
	Pace         *float64  `json:"pace"`
	AverageSpeed *float64  `json:"averageSpeed"`
	GpsTrack     *string   `json:"gpsTrack"`
	Note         *string   `json:"note"`
	CreatedAt    time.Time `json:"createdAt"`
}

type statsResp struct {
	UserID        uint64    `json:"userId"`
	TotalWorkouts int       `json:"totalWorkouts"`
	TotalDistance float64   `json:"totalDistance"`
	AverageSpeed  float64   `json:"averageSpeed"`
	MaxDistance   float64   `json:"maxDistance"`
	TotalDuration float64   `json:"totalDuration"`
	FastestPace   *float64  `json:"fastestPace"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

func toActivityResp(a model.Activity) activityResp {
	return activityResp{
		ID: a.ID, UserID: a.UserID, Name: a.Name, Type: a.Type,
		Duration: a.Duration, Distance: a.Distance, Pace: a.Pace,
		AverageSpeed: a.AverageSpeed, GpsTrack: a.GpsTrack, Note: a.Note,
		CreatedAt: a.CreatedAt,
	}
}

func toStatsResp(s model.UserStats) statsResp {
	return statsResp{
		UserID: s.UserID, TotalWorkouts: s.TotalWorkouts,
		TotalDistance: s.TotalDistance, AverageSpeed: s.AverageSpeed,
		MaxDistance: s.MaxDistance, TotalDuration: s.TotalDuration,
		FastestPace: s.FastestPace, LastUpdated: s.LastUpdated,
	}
}

// currentUserID pulls the authenticated user id stored by the JWT
// middleware.
func currentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("user_id").(uint64)
	return id, ok
}

// List returns all of the caller's activities, newest first.
func (h *ActivityHandler) List(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	activities, err := h.Activities.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list activities failed"})
	}
	out := make([]activityResp, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityResp(a))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one of the caller's activities.
func (h *ActivityHandler) Get(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Activities.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load activity failed"})
	}
	return c.JSON(http.StatusOK, toActivityResp(a))
}

// Create stores a new activity, refreshes the owner's statistics and
// publishes an activity.changed event.
func (h *ActivityHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/type required"})
	}

	a := model.Activity{
		UserID: userID, Name: req.Name, Type: req.Type,
		Duration: req.Duration, Distance: req.Distance,
		Pace: req.Pace, AverageSpeed: req.AverageSpeed,
		GpsTrack: req.GpsTrack, Note: req.Note,
	}
	if err := service.ValidateActivity(a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity data"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Activities.Create(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create activity failed"})
	}
	h.afterMutation(ctx, userID, a.ID, "created")

	return c.JSON(http.StatusCreated, toActivityResp(a))
}

// Update rewrites the content of one of the caller's activities and
// refreshes the statistics.
func (h *ActivityHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/type required"})
	}

	a := model.Activity{
		ID: id, UserID: userID, Name: req.Name, Type: req.Type,
		Duration: req.Duration, Distance: req.Distance,
		Pace: req.Pace, AverageSpeed: req.AverageSpeed,
		GpsTrack: req.GpsTrack, Note: req.Note,
	}
	if err := service.ValidateActivity(a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity data"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Activities.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update activity failed"})
	}
	h.afterMutation(ctx, userID, id, "updated")

	updated, err := h.Activities.GetForUser(ctx, id, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load activity failed"})
	}
	return c.JSON(http.StatusOK, toActivityResp(updated))
}

// Delete removes one of the caller's activities and refreshes the
// statistics.
func (h *ActivityHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Activities.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete activity failed"})
	}
	h.afterMutation(ctx, userID, id, "deleted")

	return c.NoContent(http.StatusNoContent)
}

// GetStats recomputes and returns the caller's statistics. A user with
// no activities gets the all-zero summary with no fastest pace.
func (h *ActivityHandler) GetStats(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summary, err := h.Stats.RecomputeForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "compute stats failed"})
	}
	observability.RecordStatsRecompute("read")
	return c.JSON(http.StatusOK, toStatsResp(summary))
}

// Ranking is the public leaderboard. Every user's statistics are
// recomputed before sorting, so the view is never built from a stale
// cache. sortBy selects the metric; unknown values rank by workout
// count.
func (h *ActivityHandler) Ranking(c echo.Context) error {
	key := ranking.ParseSortKey(c.QueryParam("sortBy"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	entries, err := h.Stats.Ranking(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build ranking failed"})
	}
	observability.RecordStatsRecompute("ranking")
	return c.JSON(http.StatusOK, entries)
}

// ExportGpx renders one activity's stored track as a GPX document.
func (h *ActivityHandler) ExportGpx(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Activities.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load activity failed"})
	}

	doc, err := gpx.Export(a)
	if err != nil {
		switch {
		case errors.Is(err, gpx.ErrNoTrackData):
			observability.RecordGpxExport("no_track")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "activity has no GPS track"})
		case errors.Is(err, gpx.ErrMalformedTrack):
			observability.RecordGpxExport("malformed")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "GPS track is malformed"})
		case errors.Is(err, gpx.ErrEmptyTrack):
			observability.RecordGpxExport("empty")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "GPS track is empty"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
		}
	}
	observability.RecordGpxExport("ok")

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="activity_%d.gpx"`, id))
	return c.Blob(http.StatusOK, gpx.ContentType, doc)
}

// afterMutation refreshes the owner's statistics inline and publishes
// the change event for out-of-band consumers. Publish failures are
// ignored: the inline recompute already keeps the cache consistent.
func (h *ActivityHandler) afterMutation(ctx context.Context, userID, activityID uint64, action string) {
	if _, err := h.Stats.RecomputeForUser(ctx, userID); err != nil {
		log.Printf("recompute stats for user %d after %s failed: %v", userID, action, err)
	}
	observability.RecordStatsRecompute("write")
	_ = service.PublishActivityChanged(ctx, queue.ActivityChangedEvent{
		UserID:     userID,
		ActivityID: activityID,
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
