package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

func TestRestoreReportsRouteForStoredSession(t *testing.T) {
	user := domain.User{ID: "usr_1", Role: domain.RoleCreator, OnboardingCompleted: false}
	sessions := &stubSessions{current: domain.Session{
		Phase:           domain.PhaseAuthenticated,
		IsAuthenticated: true,
		User:            &user,
		Role:            domain.RoleCreator,
	}}
	h := NewSessionHandler(sessions)

	c, rec := newTestContext(t, http.MethodPost, "/session/restore", "", true)
	if err := h.Restore(c); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsAuthenticated {
		t.Fatal("expected authenticated")
	}
	if resp.Route != domain.RouteCreatorOnboarding {
		t.Fatalf("route = %q, want %q", resp.Route, domain.RouteCreatorOnboarding)
	}
}

func TestCurrentUnauthenticatedRoutesToAuth(t *testing.T) {
	sessions := &stubSessions{current: domain.Session{Phase: domain.PhaseUnauthenticated}}
	h := NewSessionHandler(sessions)

	c, rec := newTestContext(t, http.MethodGet, "/session", "", true)
	if err := h.Current(c); err != nil {
		t.Fatalf("Current: %v", err)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Route != domain.RouteAuth {
		t.Fatalf("route = %q, want %q", resp.Route, domain.RouteAuth)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	user := domain.User{ID: "usr_1", Role: domain.RoleCreator}
	sessions := &stubSessions{current: domain.Session{
		Phase:           domain.PhaseAuthenticated,
		IsAuthenticated: true,
		User:            &user,
	}}
	h := NewSessionHandler(sessions)

	c, rec := newTestContext(t, http.MethodPost, "/session/logout", "", true)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !sessions.logoutCalled {
		t.Fatal("logout was not delegated")
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.IsAuthenticated || resp.Route != domain.RouteAuth {
		t.Fatalf("unexpected post-logout response %+v", resp)
	}
}

func TestSetRolePersistsSelection(t *testing.T) {
	sessions := &stubSessions{current: domain.Session{Phase: domain.PhaseUnauthenticated}}
	h := NewSessionHandler(sessions)

	c, _ := newTestContext(t, http.MethodPut, "/session/role", `{"role":"brand"}`, true)
	if err := h.SetRole(c); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if sessions.roleSet != domain.RoleBrand {
		t.Fatalf("role = %q, want brand", sessions.roleSet)
	}
}

func TestSetRoleRejectsUnknownValue(t *testing.T) {
	h := NewSessionHandler(&stubSessions{})

	c, _ := newTestContext(t, http.MethodPut, "/session/role", `{"role":"moderator"}`, true)
	if err := h.SetRole(c); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
