package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/service"
)

type FavoriteHandler struct {
	favorites *service.FavoriteService
}

func RegisterFavorites(e *echo.Echo, favorites *service.FavoriteService) {
	handler := &FavoriteHandler{favorites: favorites}

	e.GET("/favorites", handler.index, RequireLogin())
	e.POST("/listings/:id/favorite", handler.save, RequireLogin())
	e.DELETE("/listings/:id/favorite", handler.remove, RequireLogin())
}

func (h *FavoriteHandler) index(c echo.Context) error {
	user, _ := CurrentUser(c)
	items, err := h.favorites.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "favorites/index", "Saved Listings", items)
}

func (h *FavoriteHandler) save(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flashError(c, "Listing you requested for does not exist!")
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	user, _ := CurrentUser(c)

	if _, err := h.favorites.Save(c.Request().Context(), user.ID, listingID); err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			flashError(c, "Listing you requested for does not exist!")
			return c.Redirect(http.StatusSeeOther, "/listings")
		case errors.Is(err, service.ErrFavoriteAlreadyExists):
			flashError(c, "Already in your saved listings.")
		default:
			return err
		}
	} else {
		flashSuccess(c, "Saved to your favorites!")
	}
	return c.Redirect(http.StatusSeeOther, "/listings/"+listingID.String())
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	user, _ := CurrentUser(c)

	if err := h.favorites.Remove(c.Request().Context(), user.ID, listingID); err != nil {
		if !errors.Is(err, service.ErrFavoriteNotFound) {
			return err
		}
	}
	flashSuccess(c, "Removed from your favorites.")
	return c.Redirect(http.StatusSeeOther, "/favorites")
}
