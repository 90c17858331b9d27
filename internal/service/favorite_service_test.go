package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestFavoriteService_SaveAndRemove(t *testing.T) {
	ctx := context.Background()
	listings := newMemoryListingRepo()
	listing := seedListing(t, listings)
	svc := NewFavoriteService(newMemoryFavoriteRepo(), listings)
	userID := uuid.New()

	if _, err := svc.Save(ctx, userID, listing.ID); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := svc.Save(ctx, userID, listing.ID); !errors.Is(err, ErrFavoriteAlreadyExists) {
		t.Fatalf("expected ErrFavoriteAlreadyExists, got %v", err)
	}

	saved, err := svc.IsSaved(ctx, userID, listing.ID)
	if err != nil || !saved {
		t.Fatalf("expected listing to be saved, got %v %v", saved, err)
	}

	if err := svc.Remove(ctx, userID, listing.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := svc.Remove(ctx, userID, listing.ID); !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
}

func TestFavoriteService_SaveMissingListing(t *testing.T) {
	svc := NewFavoriteService(newMemoryFavoriteRepo(), newMemoryListingRepo())
	if _, err := svc.Save(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}
