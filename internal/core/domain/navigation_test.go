package domain

import "testing"

func TestResolveRoute(t *testing.T) {
	creator := &User{ID: "usr_1", Role: RoleCreator}
	onboardedCreator := &User{ID: "usr_2", Role: RoleCreator, OnboardingCompleted: true}
	brand := &User{ID: "usr_3", Role: RoleBrand}
	onboardedBrand := &User{ID: "usr_4", Role: RoleBrand, OnboardingCompleted: true}

	tests := []struct {
		name string
		sess Session
		want Route
	}{
		{"uninitialized", NewSession(), RouteAuth},
		{"unauthenticated", Session{Phase: PhaseUnauthenticated}, RouteAuth},
		{"role selected but not logged in", Session{Phase: PhaseUnauthenticated, Role: RoleBrand}, RouteAuth},
		{"creator mid onboarding", Session{Phase: PhaseAuthenticated, IsAuthenticated: true, User: creator, Role: RoleCreator}, RouteCreatorOnboarding},
		{"creator onboarded", Session{Phase: PhaseAuthenticated, IsAuthenticated: true, User: onboardedCreator, Role: RoleCreator}, RouteCreatorHome},
		{"brand mid onboarding", Session{Phase: PhaseAuthenticated, IsAuthenticated: true, User: brand, Role: RoleBrand}, RouteBrandOnboarding},
		{"brand onboarded", Session{Phase: PhaseAuthenticated, IsAuthenticated: true, User: onboardedBrand, Role: RoleBrand}, RouteBrandHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRoute(tt.sess); got != tt.want {
				t.Errorf("ResolveRoute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRouteAuthenticatedWithoutUserFallsBackToAuth(t *testing.T) {
	sess := Session{Phase: PhaseAuthenticated, IsAuthenticated: true}
	if got := ResolveRoute(sess); got != RouteAuth {
		t.Errorf("ResolveRoute() = %q, want %q", got, RouteAuth)
	}
}
