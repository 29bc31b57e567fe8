package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketplace/backend/internal/middleware"
	"github.com/ticketplace/backend/internal/tokens"
)

type Deps struct {
	AuthHandler *AuthHTTP
	Verifier    *tokens.Verifier
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/logout", d.AuthHandler.Logout)
	e.POST("/validate-token", d.AuthHandler.ValidateToken)

	authMw := middleware.NewRequireAuth(d.Verifier)

	private := e.Group("")
	private.Use(authMw.Middleware)

	private.GET("/getUser", d.AuthHandler.GetUser)
}
