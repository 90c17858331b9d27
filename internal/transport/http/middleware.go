package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/service"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

// ResolveUser loads the logged-in user from the session cookie when one is
// present. It never rejects; pages render for guests too.
func ResolveUser(auth *service.AuthService, cookies *SessionCookies) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := cookies.read(c)
			if token == "" {
				return next(c)
			}
			user, err := auth.ResolveSession(c.Request().Context(), token)
			if err != nil {
				// Stale or revoked session; drop the cookie.
				cookies.clear(c)
				return next(c)
			}
			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// RequireLogin sends guests to the login page, remembering where they were
// headed.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentUser(c); !ok {
				rememberReturnTo(c, c.Request().URL.RequestURI())
				flashError(c, "You must be signed in first!")
				return c.Redirect(http.StatusSeeOther, "/users/login")
			}
			return next(c)
		}
	}
}

// RequireListingOwner guards listing mutations. Existence is checked before
// ownership, so a missing listing reports not found instead of failing on a
// nil record.
func RequireListingOwner(listings *service.ListingService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				rememberReturnTo(c, c.Request().URL.RequestURI())
				flashError(c, "You must be signed in first!")
				return c.Redirect(http.StatusSeeOther, "/users/login")
			}

			id, err := uuid.Parse(c.Param("id"))
			if err != nil {
				flashError(c, "Listing you requested for does not exist!")
				return c.Redirect(http.StatusSeeOther, "/listings")
			}
			listing, err := listings.Get(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, service.ErrListingNotFound) {
					flashError(c, "Listing you requested for does not exist!")
					return c.Redirect(http.StatusSeeOther, "/listings")
				}
				return err
			}
			if listing.OwnerID != user.ID {
				flashError(c, "You are not the owner of this listing!")
				return c.Redirect(http.StatusSeeOther, "/listings/"+id.String())
			}
			return next(c)
		}
	}
}

// RequireReviewAuthor guards review deletion the same way.
func RequireReviewAuthor(reviews *service.ReviewService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				rememberReturnTo(c, c.Request().URL.RequestURI())
				flashError(c, "You must be signed in first!")
				return c.Redirect(http.StatusSeeOther, "/users/login")
			}

			listingID := c.Param("id")
			reviewID, err := uuid.Parse(c.Param("reviewId"))
			if err != nil {
				flashError(c, "Review does not exist!")
				return c.Redirect(http.StatusSeeOther, "/listings/"+listingID)
			}
			review, err := reviews.Get(c.Request().Context(), reviewID)
			if err != nil {
				if errors.Is(err, service.ErrReviewNotFound) {
					flashError(c, "Review does not exist!")
					return c.Redirect(http.StatusSeeOther, "/listings/"+listingID)
				}
				return err
			}
			if review.AuthorID != user.ID {
				flashError(c, "You are not the author of this review!")
				return c.Redirect(http.StatusSeeOther, "/listings/"+listingID)
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok && user != nil
}
