package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

var ErrUnknownStep = errors.New("unknown onboarding step")
var ErrStepIncomplete = errors.New("onboarding step incomplete")

// Step names, in flow order.
const (
	StepIdentity = "identity"
	StepProfile  = "profile"
	StepSocials  = "socials"
	StepCompany  = "company"
)

var creatorSteps = []string{StepIdentity, StepProfile, StepSocials}
var brandSteps = []string{StepIdentity, StepCompany}

// Step schemas. Field names match the StepValues keys.
type identityStep struct {
	Name string `validate:"required,min=2"`
}

type profileStep struct {
	Bio   string `validate:"required,min=10"`
	Niche string `validate:"required"`
}

type socialsStep struct {
	Instagram string `validate:"omitempty,min=2"`
}

type companyStep struct {
	Description string `validate:"required,min=10"`
	Industry    string `validate:"required"`
}

// OnboardingFlow collects role-specific profile fields step by step.
// Recorded values are additive, so going back a step never loses input,
// and the session user is only touched by Complete.
type OnboardingFlow struct {
	sessions ports.SessionService
	validate *validator.Validate

	mu    sync.Mutex
	state map[string]ports.StepValues
}

func NewOnboardingFlow(sessions ports.SessionService) *OnboardingFlow {
	return &OnboardingFlow{
		sessions: sessions,
		validate: validator.New(),
		state:    make(map[string]ports.StepValues),
	}
}

// Steps lists the ordered step names for a role.
func (f *OnboardingFlow) Steps(role domain.Role) []string {
	switch role {
	case domain.RoleBrand:
		return append([]string(nil), brandSteps...)
	default:
		return append([]string(nil), creatorSteps...)
	}
}

// Record merges one step's values into the device's accumulated state,
// refusing values that fail the step's validation.
func (f *OnboardingFlow) Record(_ context.Context, deviceID string, role domain.Role, step string, values ports.StepValues) error {
	merged := f.merged(deviceID, values)
	if err := f.validateStep(role, step, merged); err != nil {
		return err
	}

	f.mu.Lock()
	cur, ok := f.state[deviceID]
	if !ok {
		cur = make(ports.StepValues)
		f.state[deviceID] = cur
	}
	for k, v := range values {
		cur[k] = v
	}
	f.mu.Unlock()
	return nil
}

// CanAdvance reports whether the step's recorded values pass validation.
func (f *OnboardingFlow) CanAdvance(deviceID string, role domain.Role, step string) bool {
	return f.validateStep(role, step, f.merged(deviceID, nil)) == nil
}

// Complete validates every step for the role and applies the assembled
// profile to the session user with onboarding marked complete. The session
// mutator is never called before the last validation passes.
func (f *OnboardingFlow) Complete(ctx context.Context, deviceID string, role domain.Role) (*domain.User, error) {
	values := f.merged(deviceID, nil)
	for _, step := range f.Steps(role) {
		if err := f.validateStep(role, step, values); err != nil {
			return nil, err
		}
	}

	done := true
	patch := domain.UserPatch{OnboardingCompleted: &done}
	name := values["name"]
	patch.Name = &name
	switch role {
	case domain.RoleBrand:
		description := values["description"]
		industry := values["industry"]
		patch.Description = &description
		patch.Industry = &industry
	default:
		bio := values["bio"]
		niche := values["niche"]
		patch.Bio = &bio
		patch.Niche = &niche
		if instagram := values["instagram"]; instagram != "" {
			patch.SocialAccounts = &domain.SocialAccounts{Instagram: instagram}
		}
	}

	user, err := f.sessions.UpdateUser(ctx, deviceID, patch)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	delete(f.state, deviceID)
	f.mu.Unlock()
	return user, nil
}

func (f *OnboardingFlow) merged(deviceID string, extra ports.StepValues) ports.StepValues {
	out := make(ports.StepValues)
	f.mu.Lock()
	for k, v := range f.state[deviceID] {
		out[k] = v
	}
	f.mu.Unlock()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (f *OnboardingFlow) validateStep(role domain.Role, step string, values ports.StepValues) error {
	var schema any
	switch {
	case step == StepIdentity:
		schema = identityStep{Name: values["name"]}
	case step == StepProfile && role != domain.RoleBrand:
		schema = profileStep{Bio: values["bio"], Niche: values["niche"]}
	case step == StepSocials && role != domain.RoleBrand:
		schema = socialsStep{Instagram: values["instagram"]}
	case step == StepCompany && role == domain.RoleBrand:
		schema = companyStep{Description: values["description"], Industry: values["industry"]}
	default:
		return ErrUnknownStep
	}

	if err := f.validate.Struct(schema); err != nil {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, err)
	}
	return nil
}
