package domain

// Route names the screen subtree a client should mount for a given session.
type Route string

const (
	RouteAuth              Route = "auth"
	RouteCreatorOnboarding Route = "creator_onboarding"
	RouteBrandOnboarding   Route = "brand_onboarding"
	RouteCreatorHome       Route = "creator_home"
	RouteBrandHome         Route = "brand_home"
)

// ResolveRoute derives the mounted subtree from (isAuthenticated, role,
// onboardingCompleted). The role switch is exhaustive over the closed Role
// set; an unknown role falls back to the auth flow rather than a half-built
// main app.
func ResolveRoute(s Session) Route {
	if !s.IsAuthenticated || s.User == nil {
		return RouteAuth
	}
	switch s.User.Role {
	case RoleCreator:
		if !s.User.OnboardingCompleted {
			return RouteCreatorOnboarding
		}
		return RouteCreatorHome
	case RoleBrand:
		if !s.User.OnboardingCompleted {
			return RouteBrandOnboarding
		}
		return RouteBrandHome
	default:
		return RouteAuth
	}
}
