package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

type ExperienceRepository struct {
	db *sqlx.DB
}

func NewExperienceRepo(db *sqlx.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

func (r *ExperienceRepository) Create(ctx context.Context, experience *domain.Experience) (*domain.Experience, error) {
	const query = `
		INSERT INTO experience (title, description, image_url, location, price)
		VALUES (:title, :description, :image_url, :location, :price)
		RETURNING id, title, description, image_url, location, price, created_at
	`
	args := map[string]any{
		"title":       experience.Title,
		"description": nullString(experience.Description),
		"image_url":   nullString(experience.ImageURL),
		"location":    nullString(experience.Location),
		"price":       nullFloat(experience.Price),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Experience
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ExperienceRepository) ListFirst(ctx context.Context, limit int) ([]domain.Experience, error) {
	const query = `
		SELECT id, title, description, image_url, location, price, created_at
		FROM experience
		ORDER BY created_at ASC, id ASC
		LIMIT $1
	`
	return r.selectExperiences(ctx, query, limit)
}

func (r *ExperienceRepository) List(ctx context.Context) ([]domain.Experience, error) {
	const query = `
		SELECT id, title, description, image_url, location, price, created_at
		FROM experience
		ORDER BY created_at ASC, id ASC
	`
	return r.selectExperiences(ctx, query)
}

func (r *ExperienceRepository) selectExperiences(ctx context.Context, query string, args ...any) ([]domain.Experience, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	experiences := make([]domain.Experience, 0)
	for rows.Next() {
		var experience domain.Experience
		if err := rows.StructScan(&experience); err != nil {
			return nil, err
		}
		experiences = append(experiences, experience)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return experiences, nil
}

var _ ports.ExperienceRepository = (*ExperienceRepository)(nil)
