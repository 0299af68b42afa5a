package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportplus/backend/internal/auth"
	"github.com/sportplus/backend/internal/observability"
	"github.com/sportplus/backend/internal/repository"
	"github.com/sportplus/backend/internal/service"
)

// AuthHandler bundles dependencies for the registration, login and
// password-reset endpoints.
type AuthHandler struct {
	Creds  *auth.Service
	Mailer service.Mailer
}

func NewAuthHandler(creds *auth.Service, mailer service.Mailer) *AuthHandler {
	return &AuthHandler{Creds: creds, Mailer: mailer}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register: create a user account. Unlike login, no token is issued;
// the client signs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Creds.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user": userPart{ID: uid, Email: req.Email, Role: "USER"},
	})
}

// Login: verify credentials and return a session token. Unknown email
// and wrong password produce the identical response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, tok, err := h.Creds.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			observability.RecordLoginFailure()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":    userPart{ID: u.ID, Email: u.Email, Role: u.Role},
		"session": tokenPart{Token: tok.Token, Expires: tok.Exp},
	})
}

// ForgotPassword: issue a reset token for the account and mail it. When
// no mail relay is configured the token is logged instead so local
// setups stay usable. Mail failure does not fail the request; the token
// is only a capability and the client can always ask again.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, tok, err := h.Creds.IssueResetToken(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no account with that email"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue reset token failed"})
	}

	if h.Mailer.Enabled() {
		if err := h.Mailer.SendResetToken(u.Email, tok.Token); err != nil {
			log.Printf("reset mail to %s failed: %v", u.Email, err)
		}
	} else {
		log.Printf("reset token for %s: %s", u.Email, tok.Token)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "reset token sent"})
}

// ResetPassword: verify the reset token and overwrite the password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Token) == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token/new_password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Creds.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidOrExpiredToken) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token invalid or expired"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}
