package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type stubGateway struct {
	challenge    *ports.ChallengeResult
	challengeErr error
	verify       *ports.VerifyResult
	verifyErr    error
	signup       *ports.AuthResult
	signupErr    error
}

func (s *stubGateway) RequestOTP(ctx context.Context, identifier string) (*ports.ChallengeResult, error) {
	return s.challenge, s.challengeErr
}

func (s *stubGateway) VerifyOTP(ctx context.Context, identifier, code string) (*ports.VerifyResult, error) {
	return s.verify, s.verifyErr
}

func (s *stubGateway) CompleteSignup(ctx context.Context, identifier string, role domain.Role, seed ports.ProfileSeed) (*ports.AuthResult, error) {
	return s.signup, s.signupErr
}

type stubSessions struct {
	current      domain.Session
	loginDevice  string
	loginUser    *domain.User
	loginToken   string
	logoutCalled bool
	roleSet      domain.Role
	updated      *domain.User
	updateErr    error
}

func (s *stubSessions) LoadStoredAuth(ctx context.Context, deviceID string) (domain.Session, error) {
	return s.current, nil
}

func (s *stubSessions) Login(ctx context.Context, deviceID string, user domain.User, token string) (domain.Session, error) {
	s.loginDevice = deviceID
	s.loginUser = &user
	s.loginToken = token
	s.current = domain.Session{
		Phase:           domain.PhaseAuthenticated,
		IsAuthenticated: true,
		User:            &user,
		Token:           token,
		Role:            user.Role,
	}
	return s.current, nil
}

func (s *stubSessions) Logout(ctx context.Context, deviceID string) error {
	s.logoutCalled = true
	s.current = domain.Session{Phase: domain.PhaseUnauthenticated}
	return nil
}

func (s *stubSessions) UpdateUser(ctx context.Context, deviceID string, patch domain.UserPatch) (*domain.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updated, nil
}

func (s *stubSessions) SetRole(ctx context.Context, deviceID string, role domain.Role) error {
	s.roleSet = role
	s.current.Role = role
	return nil
}

func (s *stubSessions) Current(deviceID string) domain.Session {
	return s.current
}

func newTestContext(t *testing.T, method, target, body string, withDevice bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if withDevice {
		req.Header.Set(deviceHeader, "device-1")
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequestOTPReturnsDeliveryStatus(t *testing.T) {
	gw := &stubGateway{challenge: &ports.ChallengeResult{Identifier: "a@b.com", Delivered: true}}
	h := NewAuthHandler(gw, &stubSessions{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/otp/request", `{"identifier":"a@b.com"}`, false)
	if err := h.RequestOTP(c); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp requestOTPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.OTPSent || resp.Identifier != "a@b.com" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestRequestOTPPropagatesRateLimit(t *testing.T) {
	gw := &stubGateway{challengeErr: domain.ErrTooManyRequests}
	h := NewAuthHandler(gw, &stubSessions{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/otp/request", `{"identifier":"a@b.com"}`, false)
	if err := h.RequestOTP(c); err != domain.ErrTooManyRequests {
		t.Fatalf("err = %v, want ErrTooManyRequests", err)
	}
}

func TestVerifyOTPNewUserDoesNotLogin(t *testing.T) {
	gw := &stubGateway{verify: &ports.VerifyResult{NewUser: true}}
	sessions := &stubSessions{}
	h := NewAuthHandler(gw, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/auth/otp/verify", `{"identifier":"+91 9999999999","code":"123456"}`, true)
	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.NewUser {
		t.Fatal("expected new_user")
	}
	if resp.Route != domain.RouteAuth {
		t.Fatalf("route = %q, want %q", resp.Route, domain.RouteAuth)
	}
	if sessions.loginUser != nil {
		t.Fatal("no session should be established for a new user")
	}
}

func TestVerifyOTPKnownUserEstablishesSession(t *testing.T) {
	user := domain.User{ID: "usr_1", Identifier: "a@b.com", Role: domain.RoleCreator, OnboardingCompleted: true}
	gw := &stubGateway{verify: &ports.VerifyResult{User: &user, Token: "tok"}}
	sessions := &stubSessions{}
	h := NewAuthHandler(gw, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/auth/otp/verify", `{"identifier":"a@b.com","code":"123456"}`, true)
	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if sessions.loginDevice != "device-1" || sessions.loginToken != "tok" {
		t.Fatalf("login not recorded: device=%q token=%q", sessions.loginDevice, sessions.loginToken)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Route != domain.RouteCreatorHome {
		t.Fatalf("route = %q, want %q", resp.Route, domain.RouteCreatorHome)
	}
}

func TestVerifyOTPRequiresDeviceHeader(t *testing.T) {
	h := NewAuthHandler(&stubGateway{}, &stubSessions{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/otp/verify", `{"identifier":"a@b.com","code":"123456"}`, false)
	err := h.VerifyOTP(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestCompleteSignupLogsDeviceIn(t *testing.T) {
	user := domain.User{ID: "usr_2", Identifier: "b@c.com", Role: domain.RoleBrand}
	gw := &stubGateway{signup: &ports.AuthResult{User: &user, Token: "tok2"}}
	sessions := &stubSessions{}
	h := NewAuthHandler(gw, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signup", `{"identifier":"b@c.com","role":"brand","name":"Acme"}`, true)
	if err := h.CompleteSignup(c); err != nil {
		t.Fatalf("CompleteSignup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if sessions.loginToken != "tok2" {
		t.Fatal("session not established after signup")
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Route != domain.RouteBrandOnboarding {
		t.Fatalf("route = %q, want %q", resp.Route, domain.RouteBrandOnboarding)
	}
}

func TestCompleteSignupRejectsUnknownRole(t *testing.T) {
	h := NewAuthHandler(&stubGateway{}, &stubSessions{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup", `{"identifier":"b@c.com","role":"admin"}`, true)
	if err := h.CompleteSignup(c); err == nil {
		t.Fatal("expected validation error for unknown role")
	}
}
