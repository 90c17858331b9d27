package main

import (
	"context"
	"log"
	"time"

	"github.com/wanderhq/wanderlust/internal/config"
	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/postgres"
	"github.com/wanderhq/wanderlust/internal/service"
)

func strptr(s string) *string     { return &s }
func floatptr(f float64) *float64 { return &f }
func point(lng, lat float64) domain.NullGeometry {
	return domain.NullGeometry{
		Geometry: domain.Geometry{Type: "Point", Coordinates: []float64{lng, lat}},
		Valid:    true,
	}
}

var sampleExperiences = []domain.Experience{
	{
		Title:       "Street Food Tasting Tour",
		Description: strptr("Explore the local food markets and taste the best street food with a local expert."),
		ImageURL:    strptr("https://images.unsplash.com/photo-1648889646912-7a5c2a0655f5"),
		Location:    strptr("Delhi"),
		Price:       floatptr(999),
	},
	{
		Title:       "Sunset Kayaking Adventure",
		Description: strptr("Enjoy a peaceful sunset while kayaking through scenic rivers."),
		ImageURL:    strptr("https://images.unsplash.com/photo-1507525428034-b723cf961d3e"),
		Location:    strptr("Kerala"),
		Price:       floatptr(1299),
	},
	{
		Title:       "Pottery Workshop",
		Description: strptr("Hands-on experience shaping clay and learning traditional pottery techniques."),
		ImageURL:    strptr("https://images.unsplash.com/photo-1683861763373-b62d946619ac"),
		Location:    strptr("Jaipur"),
		Price:       floatptr(599),
	},
}

func sampleListings() []domain.Listing {
	return []domain.Listing{
		{
			Name:        "Cozy Beachfront Cottage",
			Description: strptr("Escape to this charming beachfront cottage for a relaxing getaway. Enjoy stunning ocean views and easy access to the beach."),
			ImageURL:    strptr("https://images.unsplash.com/photo-1552733407-5d5c46c3bb3b"),
			Price:       floatptr(1500),
			Location:    strptr("Malibu"),
			Country:     strptr("United States"),
			Geometry:    point(-118.7798, 34.0259),
		},
		{
			Name:        "Modern Loft in Downtown",
			Description: strptr("Stay in the heart of the city in this stylish loft apartment. Perfect for urban explorers."),
			ImageURL:    strptr("https://images.unsplash.com/photo-1501785888041-af3ef285b470"),
			Price:       floatptr(1200),
			Location:    strptr("New York City"),
			Country:     strptr("United States"),
			Geometry:    point(-74.0059, 40.7128),
		},
		{
			Name:        "Mountain Retreat",
			Description: strptr("Unplug and unwind in this peaceful mountain cabin surrounded by forest trails."),
			ImageURL:    strptr("https://images.unsplash.com/photo-1571896349842-33c89424de2d"),
			Price:       floatptr(1000),
			Location:    strptr("Aspen"),
			Country:     strptr("United States"),
			Geometry:    point(-106.8175, 39.1911),
		},
		{
			Name:        "Historic Villa in Tuscany",
			Description: strptr("Experience the charm of Tuscany in this beautifully restored villa among the vineyards."),
			ImageURL:    strptr("https://images.unsplash.com/photo-1566073771259-6a8506099945"),
			Price:       floatptr(2500),
			Location:    strptr("Florence"),
			Country:     strptr("Italy"),
			Geometry:    point(11.2558, 43.7696),
		},
		{
			Name:        "Secluded Treehouse Getaway",
			Description: strptr("Live among the treetops in this unique treehouse with a private deck."),
			ImageURL:    strptr("https://images.unsplash.com/photo-1520250497591-112f2f40a3f4"),
			Price:       floatptr(800),
			Location:    strptr("Portland"),
			Country:     strptr("United States"),
			Geometry:    point(-122.6784, 45.5152),
		},
	}
}

func main() {
	cfg := config.Load()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userRepo := postgres.NewUserRepo(db)
	listingRepo := postgres.NewListingRepo(db)
	experienceRepo := postgres.NewExperienceRepo(db)

	authSvc := service.NewAuthService(userRepo, postgres.NewSessionRepo(db),
		postgres.NewPasswordResetRepo(db), nil, "", cfg.SessionTTL, cfg.PasswordResetTTL, cfg.ResetOTPLength)

	owner, err := authSvc.Register(ctx, "wanderlust", "hello@wanderlust.example", "change-me-soon")
	if err != nil {
		// An existing owner account is reused on reruns.
		owner, err = userRepo.FindByUsername(ctx, "wanderlust")
		if err != nil {
			log.Fatalf("resolve seed owner: %v", err)
		}
	}

	for _, listing := range sampleListings() {
		listing.OwnerID = owner.ID
		l := listing
		if _, err := listingRepo.Create(ctx, &l); err != nil {
			log.Fatalf("seed listing %q: %v", listing.Name, err)
		}
	}
	log.Printf("seeded %d listings", len(sampleListings()))

	for _, experience := range sampleExperiences {
		e := experience
		if _, err := experienceRepo.Create(ctx, &e); err != nil {
			log.Fatalf("seed experience %q: %v", experience.Title, err)
		}
	}
	log.Printf("seeded %d experiences", len(sampleExperiences))
}
