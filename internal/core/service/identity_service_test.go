package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by identifier
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	u, ok := r.users[identifier]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Identifier]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Identifier] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Identifier]; !exists {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.Identifier] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) ListCreators(_ context.Context, niche string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleCreator && (niche == "" || u.Niche == niche) {
			out = append(out, *u)
		}
	}
	return out, nil
}

// stubOTPStore accepts one fixed code per identifier and tracks attempts.
type stubOTPStore struct {
	code     string
	attempts map[string]int
	maxTries int
}

func newStubOTPStore(code string) *stubOTPStore {
	return &stubOTPStore{code: code, attempts: make(map[string]int), maxTries: 5}
}

func (s *stubOTPStore) Issue(_ context.Context, identifier string) (string, error) {
	s.attempts[identifier] = 0
	return s.code, nil
}

func (s *stubOTPStore) Check(_ context.Context, identifier, code string) error {
	s.attempts[identifier]++
	if s.attempts[identifier] > s.maxTries {
		return domain.ErrTooManyAttempts
	}
	if code != s.code {
		return domain.ErrInvalidCode
	}
	return nil
}

func newTestIdentity(repo ports.UserRepository, otp ports.OTPStore) *IdentityService {
	return NewIdentityService(repo, otp, "secret", time.Hour, zerolog.Nop())
}

func TestIdentityService_RequestOTP_InvalidIdentifier(t *testing.T) {
	svc := newTestIdentity(newStubUserRepo(), newStubOTPStore("123456"))

	for _, id := range []string{"", "not-an-email", "+91 99", "12345"} {
		if _, err := svc.RequestOTP(context.Background(), id); !errors.Is(err, domain.ErrInvalidIdentifier) {
			t.Fatalf("identifier %q: expected ErrInvalidIdentifier, got %v", id, err)
		}
	}
}

func TestIdentityService_RequestOTP_AcceptsPhoneAndEmail(t *testing.T) {
	svc := newTestIdentity(newStubUserRepo(), newStubOTPStore("123456"))

	for _, id := range []string{"+91 9999999999", "alice@example.com"} {
		res, err := svc.RequestOTP(context.Background(), id)
		if err != nil {
			t.Fatalf("identifier %q: %v", id, err)
		}
		if !res.Delivered {
			t.Fatalf("expected delivered challenge")
		}
	}
}

func TestIdentityService_VerifyOTP_NewUserBranch(t *testing.T) {
	svc := newTestIdentity(newStubUserRepo(), newStubOTPStore("123456"))

	res, err := svc.VerifyOTP(context.Background(), "+91 9999999999", "123456")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !res.NewUser {
		t.Fatalf("expected new-user branch for unseen identifier")
	}
	if res.User != nil {
		t.Fatalf("new user must have no record yet")
	}
}

func TestIdentityService_VerifyOTP_WrongCode(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["+91 9999999999"] = &domain.User{ID: "usr_1", Identifier: "+91 9999999999", Role: domain.RoleCreator}
	svc := newTestIdentity(repo, newStubOTPStore("123456"))

	if _, err := svc.VerifyOTP(context.Background(), "+91 9999999999", "000000"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestIdentityService_VerifyOTP_ExistingUserGetsToken(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["alice@example.com"] = &domain.User{ID: "usr_1", Identifier: "alice@example.com", Role: domain.RoleBrand}
	svc := newTestIdentity(repo, newStubOTPStore("123456"))

	res, err := svc.VerifyOTP(context.Background(), "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if res.NewUser || res.User == nil || res.Token == "" {
		t.Fatalf("expected existing user login, got %+v", res)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "brand" || claims["user_id"] != "usr_1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestIdentityService_CompleteSignup(t *testing.T) {
	svc := newTestIdentity(newStubUserRepo(), newStubOTPStore("123456"))

	res, err := svc.CompleteSignup(context.Background(), "+91 9999999999", domain.RoleBrand, ports.ProfileSeed{Name: "Fashion Brand Co."})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if res.User.ID == "" || !strings.HasPrefix(res.User.ID, "usr_") {
		t.Fatalf("expected generated user id, got %q", res.User.ID)
	}
	if res.User.Role != domain.RoleBrand {
		t.Fatalf("expected brand role, got %q", res.User.Role)
	}
	if res.User.OnboardingCompleted {
		t.Fatalf("new accounts must start with onboarding incomplete")
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
}

func TestIdentityService_CompleteSignup_UniqueIDs(t *testing.T) {
	svc := newTestIdentity(newStubUserRepo(), newStubOTPStore("123456"))

	a, err := svc.CompleteSignup(context.Background(), "a@example.com", domain.RoleCreator, ports.ProfileSeed{})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	b, err := svc.CompleteSignup(context.Background(), "b@example.com", domain.RoleCreator, ports.ProfileSeed{})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if a.User.ID == b.User.ID {
		t.Fatalf("expected collision-resistant ids, got duplicate %q", a.User.ID)
	}
}

func TestIdentityService_CompleteSignup_Conflict(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["a@example.com"] = &domain.User{ID: "usr_1", Identifier: "a@example.com", Role: domain.RoleCreator}
	svc := newTestIdentity(repo, newStubOTPStore("123456"))

	if _, err := svc.CompleteSignup(context.Background(), "a@example.com", domain.RoleCreator, ports.ProfileSeed{}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestIdentityService_CompleteSignup_BadRole(t *testing.T) {
	svc := newTestIdentity(newStubUserRepo(), newStubOTPStore("123456"))

	if _, err := svc.CompleteSignup(context.Background(), "a@example.com", domain.Role("admin"), ports.ProfileSeed{}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
