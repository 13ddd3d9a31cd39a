// Package playground provides an in-memory identity gateway for local
// development and tests. Codes are never delivered anywhere: every
// identifier verifies with the single fixed code, and a handful of fixture
// accounts exist so both role flows can be exercised end to end.
package playground

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

// FixedCode is the code every identifier verifies with.
const FixedCode = "123456"

// Identity implements ports.IdentityGateway entirely in memory. Tokens are
// real HS256 JWTs so the auth middleware works unchanged against it.
type Identity struct {
	jwtSecret string

	mu    sync.Mutex
	users map[string]*domain.User // keyed by identifier
}

// NewIdentity returns a gateway seeded with the fixture accounts.
func NewIdentity(jwtSecret string) *Identity {
	g := &Identity{jwtSecret: jwtSecret, users: make(map[string]*domain.User)}
	for _, u := range fixtureUsers() {
		user := u
		g.users[user.Identifier] = &user
	}
	return g
}

func (g *Identity) RequestOTP(_ context.Context, identifier string) (*ports.ChallengeResult, error) {
	if identifier == "" {
		return nil, domain.ErrInvalidIdentifier
	}
	return &ports.ChallengeResult{Identifier: identifier, Delivered: true}, nil
}

func (g *Identity) VerifyOTP(_ context.Context, identifier, code string) (*ports.VerifyResult, error) {
	if code != FixedCode {
		return nil, domain.ErrInvalidCode
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	user, ok := g.users[identifier]
	if !ok {
		return &ports.VerifyResult{NewUser: true}, nil
	}

	clone := *user
	token, err := g.token(user)
	if err != nil {
		return nil, err
	}
	return &ports.VerifyResult{User: &clone, Token: token}, nil
}

func (g *Identity) CompleteSignup(_ context.Context, identifier string, role domain.Role, seed ports.ProfileSeed) (*ports.AuthResult, error) {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.users[identifier]; exists {
		return nil, domain.ErrUserExists
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:         "usr_" + uuid.NewString(),
		Identifier: identifier,
		Role:       role,
		Name:       seed.Name,
		Niche:      seed.Niche,
		Industry:   seed.Industry,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	g.users[identifier] = user

	clone := *user
	token, err := g.token(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: &clone, Token: token}, nil
}

// Identity also implements ports.UserRepository over the same in-memory
// accounts, so profile and onboarding writes land in the store VerifyOTP
// reads from. Without that, finishing onboarding would not survive a
// logout and re-login.

func (g *Identity) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	user, ok := g.users[identifier]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (g *Identity) FindByID(_ context.Context, id string) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, user := range g.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (g *Identity) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.users[user.Identifier]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	g.users[user.Identifier] = &clone
	out := clone
	return &out, nil
}

func (g *Identity) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stored, ok := g.users[user.Identifier]
	if !ok || stored.ID != user.ID {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	clone.UpdatedAt = time.Now().UTC()
	g.users[user.Identifier] = &clone
	out := clone
	return &out, nil
}

func (g *Identity) ListCreators(_ context.Context, niche string) ([]domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []domain.User
	for _, user := range g.users {
		if user.Role != domain.RoleCreator || !user.OnboardingCompleted {
			continue
		}
		if niche != "" && user.Niche != niche {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (g *Identity) token(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"identifier": user.Identifier,
		"role":       string(user.Role),
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(g.jwtSecret))
}
