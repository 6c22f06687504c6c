package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/votehub/api/internal/core/domain"
)

type UserRepository interface {
	// GetByID returns (nil, nil) when no user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
