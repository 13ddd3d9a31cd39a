package ports

import (
	"context"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// StepValues accumulates the fields a user has entered across onboarding
// steps. Values are additive: navigating back never discards them.
type StepValues map[string]string

// OnboardingService implements the per-role multi-step profile flow.
type OnboardingService interface {
	// Steps lists the ordered step names for a role.
	Steps(role domain.Role) []string

	// Record validates and stores one step's values for the device. The
	// flow refuses to advance past a step whose values fail validation.
	Record(ctx context.Context, deviceID string, role domain.Role, step string, values StepValues) error

	// CanAdvance reports whether the named step's recorded values pass
	// validation.
	CanAdvance(deviceID string, role domain.Role, step string) bool

	// Complete runs the final validation across all steps and, only if it
	// passes, applies the assembled profile to the session user with
	// onboarding marked complete.
	Complete(ctx context.Context, deviceID string, role domain.Role) (*domain.User, error)
}
