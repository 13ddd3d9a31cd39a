package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")

// SessionPhase tracks where a device session sits in its lifecycle.
type SessionPhase string

const (
	PhaseUninitialized   SessionPhase = "uninitialized"
	PhaseLoading         SessionPhase = "loading"
	PhaseUnauthenticated SessionPhase = "unauthenticated"
	PhaseAuthenticated   SessionPhase = "authenticated"
)

// Session is the per-device authentication state. It is the single source
// of truth the rest of the API reads; only the session service mutates it.
type Session struct {
	Phase           SessionPhase `json:"phase"`
	IsAuthenticated bool         `json:"is_authenticated"`
	User            *User        `json:"user,omitempty"`
	Token           string       `json:"token,omitempty"`
	// Role may be set before any user exists (picked on the role-selection
	// screen). Once authenticated it always mirrors User.Role.
	Role      Role `json:"role,omitempty"`
	IsLoading bool `json:"is_loading"`
}

// NewSession returns the empty state a device starts from.
func NewSession() Session {
	return Session{Phase: PhaseUninitialized}
}

// OnboardingCompleted reports the authenticated sub-state. False when no
// user is attached.
func (s Session) OnboardingCompleted() bool {
	return s.User != nil && s.User.OnboardingCompleted
}
