package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/geocode"
	"github.com/wanderhq/wanderlust/internal/media"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

const (
	homeFeaturedCount    = 4
	homeRandomCount      = 6
	homeRecentReviews    = 6
	homeExperiencesCount = 6
)

// ListingImageUpload is the optional photo attached to a create or update
// form.
type ListingImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type ListingService struct {
	listings    ports.ListingRepository
	reviews     ports.ReviewRepository
	experiences ports.ExperienceRepository
	geocoder    ports.Geocoder
	storage     ports.ObjectStorage
	processor   media.Processor
	bucket      string
}

func NewListingService(
	listings ports.ListingRepository,
	reviews ports.ReviewRepository,
	experiences ports.ExperienceRepository,
	geocoder ports.Geocoder,
	storage ports.ObjectStorage,
	processor media.Processor,
	bucket string,
) *ListingService {
	return &ListingService{
		listings:    listings,
		reviews:     reviews,
		experiences: experiences,
		geocoder:    geocoder,
		storage:     storage,
		processor:   processor,
		bucket:      bucket,
	}
}

// HomePage aggregates the landing page sections.
type HomePage struct {
	Featured      []domain.Listing
	Random        []domain.Listing
	RecentReviews []domain.Review
	Experiences   []domain.Experience
}

func (s *ListingService) List(ctx context.Context) ([]domain.Listing, error) {
	return s.listings.List(ctx)
}

func (s *ListingService) Home(ctx context.Context) (*HomePage, error) {
	featured, err := s.listings.ListFirst(ctx, homeFeaturedCount)
	if err != nil {
		return nil, err
	}
	for i := range featured {
		reviews, err := s.reviews.ListByListing(ctx, featured[i].ID)
		if err != nil {
			return nil, err
		}
		featured[i].Reviews = reviews
	}

	random, err := s.listings.SampleRandom(ctx, homeRandomCount)
	if err != nil {
		return nil, err
	}
	recent, err := s.reviews.ListRecent(ctx, homeRecentReviews)
	if err != nil {
		return nil, err
	}
	experiences, err := s.experiences.ListFirst(ctx, homeExperiencesCount)
	if err != nil {
		return nil, err
	}

	return &HomePage{
		Featured:      featured,
		Random:        random,
		RecentReviews: recent,
		Experiences:   experiences,
	}, nil
}

func (s *ListingService) Get(ctx context.Context, id uuid.UUID, relations ...domain.ListingRelation) (*domain.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id, relations...)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) Create(ctx context.Context, ownerID uuid.UUID, fields domain.ListingFields, image *ListingImageUpload) (*domain.Listing, error) {
	if fields.Name == nil || strings.TrimSpace(*fields.Name) == "" {
		return nil, fmt.Errorf("listing name is required")
	}

	listing := &domain.Listing{
		Name:        strings.TrimSpace(*fields.Name),
		Description: fields.Description,
		Address:     fields.Address,
		Country:     fields.Country,
		Location:    fields.Location,
		Price:       fields.Price,
		Type:        fields.Type,
		Guests:      fields.Guests,
		Bedrooms:    fields.Bedrooms,
		Bathrooms:   fields.Bathrooms,
		Checkin:     fields.Checkin,
		Checkout:    fields.Checkout,
		Rules:       fields.Rules,
		OwnerID:     ownerID,
	}
	if fields.Amenities != nil {
		listing.Amenities = *fields.Amenities
	}

	listing.Geometry = s.resolveGeometry(ctx, fields.Location)

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		return nil, err
	}

	if image != nil {
		if err := s.attachImage(ctx, created, image); err != nil {
			// The row must not survive a failed image attach, or a retry
			// duplicates the listing.
			if delErr := s.listings.Delete(ctx, created.ID); delErr != nil {
				log.Printf("listing %s: roll back after failed image attach: %v", created.ID, delErr)
			}
			return nil, err
		}
	}
	return created, nil
}

func (s *ListingService) Update(ctx context.Context, id uuid.UUID, fields domain.ListingFields, image *ListingImageUpload) (*domain.Listing, error) {
	// The image is processed and uploaded before any field is written, so a
	// failed upload leaves the listing untouched.
	var imageURL, imageKey string
	if image != nil {
		var err error
		imageURL, imageKey, err = s.uploadImage(ctx, id, image)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.listings.Update(ctx, id, fields)
	if err != nil {
		if image != nil {
			s.discardUpload(ctx, imageKey)
		}
		if isNotFound(err) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	if image != nil {
		oldKey := updated.ImageKey
		if err := s.listings.SetImage(ctx, id, imageURL, imageKey); err != nil {
			s.discardUpload(ctx, imageKey)
			return nil, err
		}
		updated.ImageURL = &imageURL
		updated.ImageKey = &imageKey
		if oldKey != nil && *oldKey != imageKey {
			if err := s.storage.Remove(ctx, s.bucket, *oldKey); err != nil {
				log.Printf("listing %s: remove replaced image: %v", id, err)
			}
		}
	}
	return updated, nil
}

func (s *ListingService) Delete(ctx context.Context, id uuid.UUID) error {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrListingNotFound
		}
		return err
	}

	// Reviews and favorites cascade in the schema.
	if err := s.listings.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrListingNotFound
		}
		return err
	}

	if listing.ImageKey != nil && s.storage != nil {
		if err := s.storage.Remove(ctx, s.bucket, *listing.ImageKey); err != nil {
			log.Printf("listing %s: remove stored image: %v", id, err)
		}
	}
	return nil
}

// resolveGeometry geocodes the location when one is given. A lookup failure
// falls back to the default point and never fails the mutation.
func (s *ListingService) resolveGeometry(ctx context.Context, location *string) domain.NullGeometry {
	if location == nil || strings.TrimSpace(*location) == "" || s.geocoder == nil {
		return domain.NullGeometry{Geometry: domain.DefaultGeometry(), Valid: true}
	}
	geom, err := s.geocoder.Forward(ctx, *location)
	if err != nil {
		if !errors.Is(err, geocode.ErrUnavailable) {
			log.Printf("geocode %q: %v", *location, err)
		} else {
			log.Printf("geocode %q unavailable, using default point", *location)
		}
		return domain.NullGeometry{Geometry: domain.DefaultGeometry(), Valid: true}
	}
	return domain.NullGeometry{Geometry: geom, Valid: true}
}

func (s *ListingService) attachImage(ctx context.Context, listing *domain.Listing, image *ListingImageUpload) error {
	url, objectKey, err := s.uploadImage(ctx, listing.ID, image)
	if err != nil {
		return err
	}

	oldKey := listing.ImageKey
	if err := s.listings.SetImage(ctx, listing.ID, url, objectKey); err != nil {
		s.discardUpload(ctx, objectKey)
		return err
	}
	listing.ImageURL = &url
	listing.ImageKey = &objectKey

	if oldKey != nil && *oldKey != objectKey {
		if err := s.storage.Remove(ctx, s.bucket, *oldKey); err != nil {
			log.Printf("listing %s: remove replaced image: %v", listing.ID, err)
		}
	}
	return nil
}

func (s *ListingService) uploadImage(ctx context.Context, id uuid.UUID, image *ListingImageUpload) (string, string, error) {
	reader, size, contentType, err := prepareImageForUpload(ctx, s.processor, media.Upload{
		Reader:      image.Reader,
		Size:        image.Size,
		FileName:    image.FileName,
		ContentType: image.ContentType,
	}, media.DefaultMaxDimension)
	if err != nil {
		return "", "", fmt.Errorf("process image: %w", err)
	}

	objectKey := fmt.Sprintf("listings/%s/%s", id, uuid.NewString())
	url, err := s.storage.Upload(ctx, s.bucket, objectKey, contentType, reader, size)
	if err != nil {
		return "", "", fmt.Errorf("upload image: %w", err)
	}
	return url, objectKey, nil
}

func (s *ListingService) discardUpload(ctx context.Context, objectKey string) {
	if err := s.storage.Remove(ctx, s.bucket, objectKey); err != nil {
		log.Printf("discard uploaded image %s: %v", objectKey, err)
	}
}
