package main

import (
	"io"
	"log"
	"os"

	"github.com/wanderhq/wanderlust/internal/config"
	"github.com/wanderhq/wanderlust/internal/geocode"
	"github.com/wanderhq/wanderlust/internal/logging"
	"github.com/wanderhq/wanderlust/internal/media"
	minioRepo "github.com/wanderhq/wanderlust/internal/repository/minio"
	"github.com/wanderhq/wanderlust/internal/repository/postgres"
	"github.com/wanderhq/wanderlust/internal/service"
	transportHTTP "github.com/wanderhq/wanderlust/internal/transport/http"
	"github.com/wanderhq/wanderlust/internal/transport/mail"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	listingRepo := postgres.NewListingRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	experienceRepo := postgres.NewExperienceRepo(db)
	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)
	resetRepo := postgres.NewPasswordResetRepo(db)

	minioClient, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}
	publicURL := cfg.MinIOPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinIOUseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.MinIOEndpoint
	}
	storage := minioRepo.NewStorage(minioClient, publicURL)

	var geocoder *geocode.MapboxGeocoder
	if cfg.MapboxToken != "" {
		geocoder = geocode.NewMapboxGeocoder(cfg.MapboxToken, cfg.GeocodeTimeout)
	}
	processor := media.NewFFMPEGProcessor(cfg.FFMPEGPath, media.DefaultMaxDimension)
	mailer := mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	authSvc := service.NewAuthService(userRepo, sessionRepo, resetRepo, mailer,
		cfg.GoogleAudience, cfg.SessionTTL, cfg.PasswordResetTTL, cfg.ResetOTPLength)
	var listingSvc *service.ListingService
	if geocoder != nil {
		listingSvc = service.NewListingService(listingRepo, reviewRepo, experienceRepo, geocoder, storage, processor, cfg.MinIOBucket)
	} else {
		listingSvc = service.NewListingService(listingRepo, reviewRepo, experienceRepo, nil, storage, processor, cfg.MinIOBucket)
	}
	reviewSvc := service.NewReviewService(reviewRepo, listingRepo)
	experienceSvc := service.NewExperienceService(experienceRepo)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, listingRepo)

	e, err := transportHTTP.NewRouter(cfg.MapboxToken)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	cookies := transportHTTP.NewSessionCookies(cfg.SessionSecret, cfg.SessionTTL)
	e.Use(transportHTTP.ResolveUser(authSvc, cookies))

	transportHTTP.RegisterListings(e, listingSvc)
	transportHTTP.RegisterReviews(e, reviewSvc)
	transportHTTP.RegisterUsers(e, authSvc, cookies)
	transportHTTP.RegisterFavorites(e, favoriteSvc)
	transportHTTP.RegisterExperiences(e, experienceSvc)
	transportHTTP.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
