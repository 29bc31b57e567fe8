package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketplace/backend/internal/logging"
	"github.com/ticketplace/backend/internal/middleware"
	"github.com/ticketplace/backend/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Gender   string `json:"gender"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password, req.Gender)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			return echo.NewHTTPError(http.StatusBadRequest, "password is not strong enough")
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, "email already in use")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created successfully",
		"userId":  userID,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	c.SetCookie(newTokenCookie(accessCookieName, res.AccessToken, res.AccessExp))
	c.SetCookie(newTokenCookie(refreshCookieName, res.RefreshToken, res.RefreshExp))

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
		"user":         res.User,
	})
}

// Logout only clears the token cookies. Bearer tokens are stateless, so
// there is no server-side session to invalidate.
func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(deleteTokenCookie(accessCookieName))
	c.SetCookie(deleteTokenCookie(refreshCookieName))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out successfully",
	})
}

func (h *AuthHTTP) ValidateToken(c echo.Context) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	st := h.Svc.ValidateToken(req.Token)
	if !st.Valid {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"valid":  false,
			"reason": st.Reason,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"valid":  true,
		"userId": st.UserID,
	})
}

// GetUser runs behind RequireAuth, which has already verified the access
// token and stored the subject in the request context.
func (h *AuthHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	user, err := h.Svc.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": user,
	})
}
