package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func NewRouter(mapToken string) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// Plain HTML forms only speak GET and POST; _method upgrades them. This
	// must run before routing.
	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))

	registerLogging(e)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(WithMapToken(mapToken))

	e.HTTPErrorHandler = errorHandler

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	return e, nil
}

// errorHandler renders the generic failure page for anything a handler did
// not translate into a flash and redirect. Internals never leak to the
// visitor.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "An unexpected error occurred."
	if httpErr, ok := err.(*echo.HTTPError); ok {
		status = httpErr.Code
		if status < http.StatusInternalServerError {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}
	}
	if status >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	if renderErr := renderPage(c, status, "error", "Error", message); renderErr != nil {
		_ = c.String(status, message)
	}
}
