package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportplus/backend/internal/model"
	"github.com/sportplus/backend/internal/repository"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	Users *repository.UserRepo
}

func NewProfileHandler(users *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

type profileResp struct {
	ID        uint64     `json:"id"`
	Email     string     `json:"email"`
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    *string    `json:"gender"`
	HeightCm  *float64   `json:"heightCm"`
	WeightKg  *float64   `json:"weightKg"`
}

// updateProfileReq carries a partial update: nil fields are left
// unchanged.
type updateProfileReq struct {
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    *string    `json:"gender"`
	HeightCm  *float64   `json:"heightCm"`
	WeightKg  *float64   `json:"weightKg"`
}

func toProfileResp(u model.User) profileResp {
	return profileResp{
		ID: u.ID, Email: u.Email,
		FirstName: u.FirstName, LastName: u.LastName,
		BirthDate: u.BirthDate, Gender: u.Gender,
		HeightCm: u.HeightCm, WeightKg: u.WeightKg,
	}
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, toProfileResp(u))
}

// Update applies the non-nil fields of the request to the profile and
// returns the result.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	patch := model.User{
		ID:        userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
		HeightCm:  req.HeightCm,
		WeightKg:  req.WeightKg,
	}
	if err := h.Users.UpdateProfile(ctx, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, toProfileResp(u))
}
