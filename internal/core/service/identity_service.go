package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var phonePattern = regexp.MustCompile(`^\+?[\d\s()-]+$`)

// IdentityService is the production identity gateway: codes live in an
// OTPStore, accounts in a UserRepository, and tokens are HS256 JWTs.
type IdentityService struct {
	users     ports.UserRepository
	otp       ports.OTPStore
	logger    zerolog.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewIdentityService(users ports.UserRepository, otp ports.OTPStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &IdentityService{
		users:     users,
		otp:       otp,
		logger:    logger,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RequestOTP validates the identifier shape and issues a code. Delivery is
// a notification concern outside this service; the store enforces its own
// re-request rate limit.
func (s *IdentityService) RequestOTP(ctx context.Context, identifier string) (*ports.ChallengeResult, error) {
	if !validIdentifier(identifier) {
		return nil, domain.ErrInvalidIdentifier
	}

	if _, err := s.otp.Issue(ctx, identifier); err != nil {
		return nil, err
	}

	s.logger.Info().Str("identifier", identifier).Msg("verification code issued")
	return &ports.ChallengeResult{Identifier: identifier, Delivered: true}, nil
}

// VerifyOTP checks the code against the store. A known identifier comes
// back logged in; an unseen one signals the new-user branch so the caller
// can collect a role before CompleteSignup.
func (s *IdentityService) VerifyOTP(ctx context.Context, identifier, code string) (*ports.VerifyResult, error) {
	if err := s.otp.Check(ctx, identifier, code); err != nil {
		return nil, err
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &ports.VerifyResult{NewUser: true}, nil
		}
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.VerifyResult{User: user, Token: token}, nil
}

// CompleteSignup allocates the account for a verified identifier.
func (s *IdentityService) CompleteSignup(ctx context.Context, identifier string, role domain.Role, seed ports.ProfileSeed) (*ports.AuthResult, error) {
	if !validIdentifier(identifier) {
		return nil, domain.ErrInvalidIdentifier
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:         "usr_" + uuid.NewString(),
		Identifier: identifier,
		Role:       role,
		Name:       seed.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	switch role {
	case domain.RoleCreator:
		user.Niche = seed.Niche
	case domain.RoleBrand:
		user.Industry = seed.Industry
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("account created")
	return &ports.AuthResult{User: created, Token: token}, nil
}

func (s *IdentityService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"identifier": user.Identifier,
		"role":       string(user.Role),
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validIdentifier accepts an email address or a phone number with at least
// ten digits.
func validIdentifier(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}
	if emailPattern.MatchString(identifier) {
		return true
	}
	if !phonePattern.MatchString(identifier) {
		return false
	}
	digits := 0
	for _, r := range identifier {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}
