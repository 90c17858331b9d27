package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/service"
)

// stubListingRepo serves FindByID from a fixed map; everything else is
// unused by these tests.
type stubListingRepo struct {
	items   map[uuid.UUID]*domain.Listing
	findErr error
}

func (r *stubListingRepo) Create(context.Context, *domain.Listing) (*domain.Listing, error) {
	return nil, sql.ErrNoRows
}

func (r *stubListingRepo) Update(context.Context, uuid.UUID, domain.ListingFields) (*domain.Listing, error) {
	return nil, sql.ErrNoRows
}

func (r *stubListingRepo) SetImage(context.Context, uuid.UUID, string, string) error {
	return sql.ErrNoRows
}

func (r *stubListingRepo) Delete(context.Context, uuid.UUID) error { return sql.ErrNoRows }

func (r *stubListingRepo) FindByID(_ context.Context, id uuid.UUID, _ ...domain.ListingRelation) (*domain.Listing, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	listing, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *listing
	return &out, nil
}

func (r *stubListingRepo) List(context.Context) ([]domain.Listing, error) { return nil, nil }

func (r *stubListingRepo) ListFirst(context.Context, int) ([]domain.Listing, error) {
	return nil, nil
}

func (r *stubListingRepo) SampleRandom(context.Context, int) ([]domain.Listing, error) {
	return nil, nil
}

func ownerGuardFixture(t *testing.T, listing *domain.Listing) (*echo.Echo, echo.MiddlewareFunc) {
	t.Helper()
	repo := &stubListingRepo{items: map[uuid.UUID]*domain.Listing{}}
	if listing != nil {
		repo.items[listing.ID] = listing
	}
	svc := service.NewListingService(repo, nil, nil, nil, nil, nil, "")
	return echo.New(), RequireListingOwner(svc)
}

func TestRequireListingOwnerMissingListing(t *testing.T) {
	e, guard := ownerGuardFixture(t, nil)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	c.Set(contextUserKey, &domain.User{ID: uuid.New()})

	handler := guard(func(c echo.Context) error {
		t.Fatal("handler should not run for a missing listing")
		return nil
	})
	// The guard checks existence before touching the owner field, so a
	// missing listing redirects instead of crashing.
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/listings" {
		t.Fatalf("expected /listings redirect, got %q", loc)
	}
}

func TestRequireListingOwnerPropagatesStoreErrors(t *testing.T) {
	repo := &stubListingRepo{findErr: errors.New("connection refused")}
	svc := service.NewListingService(repo, nil, nil, nil, nil, nil, "")
	e := echo.New()
	guard := RequireListingOwner(svc)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	c.Set(contextUserKey, &domain.User{ID: uuid.New()})

	handler := guard(func(c echo.Context) error {
		t.Fatal("handler should not run when the store is down")
		return nil
	})
	// A store outage is not "listing does not exist"; the error reaches the
	// error handler instead of a misleading flash.
	if err := handler(c); err == nil {
		t.Fatalf("expected store error to propagate")
	}
	if rec.Code == http.StatusSeeOther {
		t.Fatalf("expected no redirect for a store error")
	}
}

func TestRequireListingOwnerForbidsNonOwner(t *testing.T) {
	listing := &domain.Listing{ID: uuid.New(), Name: "Cottage", OwnerID: uuid.New()}
	e, guard := ownerGuardFixture(t, listing)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(listing.ID.String())
	c.Set(contextUserKey, &domain.User{ID: uuid.New()})

	handler := guard(func(c echo.Context) error {
		t.Fatal("handler should not run for a non-owner")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/listings/"+listing.ID.String() {
		t.Fatalf("expected redirect back to the listing, got %q", loc)
	}
}

func TestRequireListingOwnerAllowsOwner(t *testing.T) {
	owner := &domain.User{ID: uuid.New()}
	listing := &domain.Listing{ID: uuid.New(), Name: "Cottage", OwnerID: owner.ID}
	e, guard := ownerGuardFixture(t, listing)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(listing.ID.String())
	c.Set(contextUserKey, owner)

	var ran bool
	handler := guard(func(c echo.Context) error {
		ran = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !ran {
		t.Fatalf("expected handler to run for the owner")
	}
}
