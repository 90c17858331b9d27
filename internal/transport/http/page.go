package http

import (
	"github.com/labstack/echo/v4"
)

func renderPage(c echo.Context, status int, name, title string, data interface{}) error {
	page := PageData{
		Title: title,
		Flash: popFlash(c),
		Data:  data,
	}
	if user, ok := CurrentUser(c); ok {
		page.CurrentUser = user
	}
	if token, ok := c.Get(contextMapTokenKey).(string); ok {
		page.MapToken = token
	}
	return c.Render(status, name, page)
}

const contextMapTokenKey = "page.map_token"

// WithMapToken exposes the map widget token to templates.
func WithMapToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextMapTokenKey, token)
			return next(c)
		}
	}
}
