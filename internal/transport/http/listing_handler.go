package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/service"
)

type ListingHandler struct {
	listings *service.ListingService
}

func RegisterListings(e *echo.Echo, listings *service.ListingService) {
	handler := &ListingHandler{listings: listings}

	e.GET("/", handler.home)
	e.GET("/listings", handler.index)
	e.GET("/listings/new", handler.newForm, RequireLogin())
	e.POST("/listings", handler.create, RequireLogin())
	e.GET("/listings/:id", handler.show)
	e.GET("/listings/:id/edit", handler.editForm, RequireListingOwner(listings))
	e.PUT("/listings/:id", handler.update, RequireListingOwner(listings))
	e.DELETE("/listings/:id", handler.delete, RequireListingOwner(listings))
}

func (h *ListingHandler) home(c echo.Context) error {
	page, err := h.listings.Home(c.Request().Context())
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "home", "Home", page)
}

func (h *ListingHandler) index(c echo.Context) error {
	all, err := h.listings.List(c.Request().Context())
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "listings/index", "All Listings", all)
}

func (h *ListingHandler) newForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "listings/new", "New Listing", nil)
}

func (h *ListingHandler) show(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		flashError(c, "Listing you requested for does not exist!")
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	listing, err := h.listings.Get(c.Request().Context(), id,
		domain.ListingRelationReviews, domain.ListingRelationOwner)
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			flashError(c, "Listing you requested for does not exist!")
			return c.Redirect(http.StatusSeeOther, "/listings")
		}
		return err
	}
	return renderPage(c, http.StatusOK, "listings/show", listing.Name, listing)
}

func (h *ListingHandler) create(c echo.Context) error {
	user, _ := CurrentUser(c)
	fields := listingFieldsFromForm(c)
	image, err := listingImageFromForm(c)
	if err != nil {
		flashError(c, "Could not read the uploaded image.")
		return c.Redirect(http.StatusSeeOther, "/listings/new")
	}
	if image != nil {
		defer image.file.Close()
	}

	created, err := h.listings.Create(c.Request().Context(), user.ID, fields, image.upload())
	if err != nil {
		flashError(c, "Could not create the listing: "+err.Error())
		return c.Redirect(http.StatusSeeOther, "/listings/new")
	}
	flashSuccess(c, "New Listing Created!")
	return c.Redirect(http.StatusSeeOther, "/listings/"+created.ID.String())
}

func (h *ListingHandler) editForm(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	listing, err := h.listings.Get(c.Request().Context(), id)
	if err != nil {
		flashError(c, "Listing you requested for does not exist!")
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	return renderPage(c, http.StatusOK, "listings/edit", "Edit Listing", listing)
}

func (h *ListingHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	fields := listingFieldsFromForm(c)
	image, err := listingImageFromForm(c)
	if err != nil {
		flashError(c, "Could not read the uploaded image.")
		return c.Redirect(http.StatusSeeOther, "/listings/"+id.String()+"/edit")
	}
	if image != nil {
		defer image.file.Close()
	}

	if _, err := h.listings.Update(c.Request().Context(), id, fields, image.upload()); err != nil {
		flashError(c, "Could not update the listing: "+err.Error())
		return c.Redirect(http.StatusSeeOther, "/listings/"+id.String()+"/edit")
	}
	flashSuccess(c, "Listing Updated!")
	return c.Redirect(http.StatusSeeOther, "/listings/"+id.String())
}

func (h *ListingHandler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	if err := h.listings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			flashError(c, "Listing you requested for does not exist!")
		} else {
			flashError(c, "Could not delete the listing.")
		}
		return c.Redirect(http.StatusSeeOther, "/listings")
	}
	flashSuccess(c, "Listing Deleted!")
	return c.Redirect(http.StatusSeeOther, "/listings")
}

func listingFieldsFromForm(c echo.Context) domain.ListingFields {
	fields := domain.ListingFields{}
	set := func(dst **string, key string) {
		if value := strings.TrimSpace(c.FormValue(key)); value != "" {
			*dst = &value
		}
	}
	set(&fields.Name, "name")
	set(&fields.Description, "description")
	set(&fields.Address, "address")
	set(&fields.Country, "country")
	set(&fields.Location, "location")
	set(&fields.Type, "type")
	set(&fields.Checkin, "checkin")
	set(&fields.Checkout, "checkout")
	set(&fields.Rules, "rules")

	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			fields.Price = &price
		}
	}
	setInt := func(dst **int, key string) {
		if raw := strings.TrimSpace(c.FormValue(key)); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				*dst = &n
			}
		}
	}
	setInt(&fields.Guests, "guests")
	setInt(&fields.Bedrooms, "bedrooms")
	setInt(&fields.Bathrooms, "bathrooms")

	if form, err := c.FormParams(); err == nil {
		if amenities, ok := form["amenities"]; ok && len(amenities) > 0 {
			cleaned := make([]string, 0, len(amenities))
			for _, a := range amenities {
				if trimmed := strings.TrimSpace(a); trimmed != "" {
					cleaned = append(cleaned, trimmed)
				}
			}
			fields.Amenities = &cleaned
		}
	}
	return fields
}

type formImage struct {
	file   multipart.File
	header *multipart.FileHeader
}

// upload converts a parsed form file into the service input. A nil receiver
// yields nil, so handlers can call it unconditionally.
func (f *formImage) upload() *service.ListingImageUpload {
	if f == nil {
		return nil
	}
	return &service.ListingImageUpload{
		Reader:      f.file,
		Size:        f.header.Size,
		FileName:    f.header.Filename,
		ContentType: f.header.Header.Get(echo.HeaderContentType),
	}
}

func listingImageFromForm(c echo.Context) (*formImage, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		// Non-multipart form posts have no file section at all.
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &formImage{file: file, header: header}, nil
}
