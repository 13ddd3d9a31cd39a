package ports

import (
	"context"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// ListCreators returns creators filtered by niche ("" for all), for
	// brand-side discovery.
	ListCreators(ctx context.Context, niche string) ([]domain.User, error)
}
