package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wanderhq/wanderlust/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, username, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	UpsertByEmail(ctx context.Context, email, username string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
}
