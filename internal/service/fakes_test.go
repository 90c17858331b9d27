package service

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

var errUniqueViolation = &pgconn.PgError{Code: "23505"}

type memoryListingRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Listing
	order []uuid.UUID

	// When set, List fills AvgRating from this repo's reviews, mirroring the
	// SQL LEFT JOIN + AVG: nil when a listing has no reviews.
	reviews *memoryReviewRepo
}

func newMemoryListingRepo() *memoryListingRepo {
	return &memoryListingRepo{items: make(map[uuid.UUID]*domain.Listing)}
}

func (r *memoryListingRepo) Create(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *listing
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *memoryListingRepo) Update(_ context.Context, id uuid.UUID, fields domain.ListingFields) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if fields.Name != nil {
		stored.Name = *fields.Name
	}
	if fields.Description != nil {
		stored.Description = fields.Description
	}
	if fields.Location != nil {
		stored.Location = fields.Location
	}
	if fields.Price != nil {
		stored.Price = fields.Price
	}
	stored.UpdatedAt = time.Now()
	out := *stored
	return &out, nil
}

func (r *memoryListingRepo) SetImage(_ context.Context, id uuid.UUID, url, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	stored.ImageURL = &url
	stored.ImageKey = &key
	return nil
}

func (r *memoryListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memoryListingRepo) FindByID(_ context.Context, id uuid.UUID, _ ...domain.ListingRelation) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryListingRepo) List(ctx context.Context) ([]domain.Listing, error) {
	r.mu.Lock()
	out := make([]domain.Listing, 0, len(r.items))
	for _, id := range r.order {
		if stored, ok := r.items[id]; ok {
			out = append(out, *stored)
		}
	}
	r.mu.Unlock()

	if r.reviews != nil {
		for i := range out {
			reviews, err := r.reviews.ListByListing(ctx, out[i].ID)
			if err != nil {
				return nil, err
			}
			if len(reviews) == 0 {
				continue
			}
			sum := 0
			for _, review := range reviews {
				sum += review.Rating
			}
			avg := float64(sum) / float64(len(reviews))
			out[i].AvgRating = &avg
		}
	}
	return out, nil
}

func (r *memoryListingRepo) ListFirst(ctx context.Context, limit int) ([]domain.Listing, error) {
	all, _ := r.List(ctx)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryListingRepo) SampleRandom(ctx context.Context, limit int) ([]domain.Listing, error) {
	return r.ListFirst(ctx, limit)
}

var _ ports.ListingRepository = (*memoryListingRepo)(nil)

type memoryReviewRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Review
}

func newMemoryReviewRepo() *memoryReviewRepo {
	return &memoryReviewRepo{items: make(map[uuid.UUID]*domain.Review)}
}

func (r *memoryReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *review
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryReviewRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryReviewRepo) ListByListing(_ context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Review, 0)
	for _, stored := range r.items {
		if stored.ListingID == listingID {
			out = append(out, *stored)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryReviewRepo) ListRecent(_ context.Context, limit int) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Review, 0, len(r.items))
	for _, stored := range r.items {
		out = append(out, *stored)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryReviewRepo) Delete(_ context.Context, listingID, reviewID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[reviewID]
	if !ok || stored.ListingID != listingID {
		return sql.ErrNoRows
	}
	delete(r.items, reviewID)
	return nil
}

var _ ports.ReviewRepository = (*memoryReviewRepo)(nil)

type memoryExperienceRepo struct {
	mu    sync.Mutex
	items []domain.Experience
}

func (r *memoryExperienceRepo) Create(_ context.Context, experience *domain.Experience) (*domain.Experience, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *experience
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	r.items = append(r.items, stored)
	out := stored
	return &out, nil
}

func (r *memoryExperienceRepo) ListFirst(_ context.Context, limit int) ([]domain.Experience, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]domain.Experience(nil), r.items...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryExperienceRepo) List(_ context.Context) ([]domain.Experience, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Experience(nil), r.items...), nil
}

var _ ports.ExperienceRepository = (*memoryExperienceRepo)(nil)

type memoryUserRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{items: make(map[uuid.UUID]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, username, email string, hash, salt []byte) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.Username == username || stored.Email == email {
			return nil, errUniqueViolation
		}
	}
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.items[user.ID] = user
	out := *user
	return &out, nil
}

func (r *memoryUserRepo) UpsertByEmail(ctx context.Context, email, username string) (*domain.User, error) {
	r.mu.Lock()
	for _, stored := range r.items {
		if stored.Email == email {
			out := *stored
			r.mu.Unlock()
			return &out, nil
		}
	}
	r.mu.Unlock()
	return r.Create(ctx, username, email, nil, nil)
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.Username == username {
			out := *stored
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.Email == email {
			out := *stored
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash, salt []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	stored.PasswordHash = hash
	stored.PasswordSalt = salt
	return nil
}

var _ ports.UserRepository = (*memoryUserRepo)(nil)

type memorySessionRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Session
	next  int64
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{items: make(map[string]*domain.Session)}
}

func (r *memorySessionRepo) Create(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	session := &domain.Session{
		ID:        r.next,
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	r.items[token] = session
	out := *session
	return &out, nil
}

func (r *memorySessionRepo) FindActive(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[token]
	if !ok || !session.IsActive || time.Now().After(session.ExpiresAt) {
		return nil, sql.ErrNoRows
	}
	out := *session
	return &out, nil
}

func (r *memorySessionRepo) Deactivate(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[token]
	if !ok {
		return sql.ErrNoRows
	}
	session.IsActive = false
	return nil
}

var _ ports.SessionRepository = (*memorySessionRepo)(nil)

type memoryFavoriteRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Favorite
}

func newMemoryFavoriteRepo() *memoryFavoriteRepo {
	return &memoryFavoriteRepo{items: make(map[uuid.UUID]*domain.Favorite)}
}

func (r *memoryFavoriteRepo) Add(_ context.Context, userID, listingID uuid.UUID) (*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.UserID == userID && stored.ListingID == listingID {
			return nil, sql.ErrNoRows
		}
	}
	favorite := &domain.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}
	r.items[favorite.ID] = favorite
	out := *favorite
	return &out, nil
}

func (r *memoryFavoriteRepo) Remove(_ context.Context, userID, listingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stored := range r.items {
		if stored.UserID == userID && stored.ListingID == listingID {
			delete(r.items, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.FavoriteListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.FavoriteListItem, 0)
	for _, stored := range r.items {
		if stored.UserID == userID {
			out = append(out, domain.FavoriteListItem{
				ID:        stored.ID,
				UserID:    stored.UserID,
				ListingID: stored.ListingID,
				CreatedAt: stored.CreatedAt,
			})
		}
	}
	return out, nil
}

func (r *memoryFavoriteRepo) Exists(_ context.Context, userID, listingID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.UserID == userID && stored.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

var _ ports.FavoriteRepository = (*memoryFavoriteRepo)(nil)

type memoryResetRepo struct {
	mu    sync.Mutex
	items []*domain.PasswordReset
	next  int64
}

func (r *memoryResetRepo) Create(_ context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	reset := &domain.PasswordReset{
		ID:        r.next,
		UserID:    userID,
		OTPHash:   otpHash,
		OTPSalt:   otpSalt,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.items = append(r.items, reset)
	out := *reset
	return &out, nil
}

func (r *memoryResetRepo) FindActiveByUser(_ context.Context, userID uuid.UUID, now time.Time) (*domain.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.items) - 1; i >= 0; i-- {
		stored := r.items[i]
		if stored.UserID == userID && !stored.Consumed && stored.ExpiresAt.After(now) {
			out := *stored
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryResetRepo) MarkConsumed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.ID == id {
			stored.Consumed = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryResetRepo) ConsumeByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.UserID == userID {
			stored.Consumed = true
		}
	}
	return nil
}

var _ ports.PasswordResetRepository = (*memoryResetRepo)(nil)

type fakeGeocoder struct {
	geometry domain.Geometry
	err      error
	calls    int
}

func (g *fakeGeocoder) Forward(_ context.Context, _ string) (domain.Geometry, error) {
	g.calls++
	if g.err != nil {
		return domain.Geometry{}, g.err
	}
	return g.geometry, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
	fail    error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, bucket, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	if s.fail != nil {
		return "", s.fail
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+objectName] = data
	return "https://cdn.test/" + bucket + "/" + objectName, nil
}

func (s *fakeStorage) Remove(_ context.Context, bucket, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+objectName)
	s.removed = append(s.removed, bucket+"/"+objectName)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	otps []string
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, email, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	m.otps = append(m.otps, otp)
	return nil
}
