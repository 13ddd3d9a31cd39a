package ports

import (
	"context"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// SessionService owns per-device session state and its persistence.
type SessionService interface {
	// LoadStoredAuth restores a session from the vault. Read failures and
	// missing token/user are soft: the device simply comes back
	// unauthenticated. A persisted role alone survives the restore.
	LoadStoredAuth(ctx context.Context, deviceID string) (domain.Session, error)

	// Login persists token and user for the device and marks it
	// authenticated.
	Login(ctx context.Context, deviceID string, user domain.User, token string) (domain.Session, error)

	// Logout purges persisted state and resets the in-memory session.
	// Idempotent: absent keys are not an error.
	Logout(ctx context.Context, deviceID string) error

	// UpdateUser shallow-merges the patch into the current user,
	// re-persists the full record, and only then updates memory. On a
	// persistence failure the in-memory user is left untouched.
	UpdateUser(ctx context.Context, deviceID string, patch domain.UserPatch) (*domain.User, error)

	// SetRole persists a role pre-selection; no user or token required.
	SetRole(ctx context.Context, deviceID string, role domain.Role) error

	// Current returns a copy of the device's in-memory session.
	Current(deviceID string) domain.Session
}
