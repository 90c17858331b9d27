package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func RegisterReviews(e *echo.Echo, reviews *service.ReviewService) {
	handler := &ReviewHandler{reviews: reviews}

	e.POST("/listings/:id/reviews", handler.create, RequireLogin())
	e.DELETE("/listings/:id/reviews/:reviewId", handler.delete, RequireReviewAuthor(reviews))
}

func (h *ReviewHandler) create(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flashError(c, "Listing you requested for does not exist!")
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	user, _ := CurrentUser(c)

	// An untouched slider posts nothing; that stays rating 0.
	rating := 0
	if raw := strings.TrimSpace(c.FormValue("rating")); raw != "" {
		rating, err = strconv.Atoi(raw)
		if err != nil {
			flashError(c, "Rating must be a number between 0 and 5.")
			return c.Redirect(http.StatusSeeOther, "/listings/"+listingID.String())
		}
	}

	_, err = h.reviews.Add(c.Request().Context(), listingID, user.ID, c.FormValue("comment"), rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			flashError(c, "Listing you requested for does not exist!")
			return c.Redirect(http.StatusSeeOther, "/listings")
		case errors.Is(err, service.ErrInvalidRating):
			flashError(c, "Rating must be a number between 0 and 5.")
			return c.Redirect(http.StatusSeeOther, "/listings/"+listingID.String())
		default:
			return err
		}
	}
	flashSuccess(c, "New Review Created!")
	return c.Redirect(http.StatusSeeOther, "/listings/"+listingID.String())
}

func (h *ReviewHandler) delete(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/listings/"+listingID.String())
	}

	if err := h.reviews.Delete(c.Request().Context(), listingID, reviewID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			flashError(c, "Review does not exist!")
		} else {
			flashError(c, "Could not delete the review.")
		}
		return c.Redirect(http.StatusSeeOther, "/listings/"+listingID.String())
	}
	flashSuccess(c, "Review Deleted!")
	return c.Redirect(http.StatusSeeOther, "/listings/"+listingID.String())
}
