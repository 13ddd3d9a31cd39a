package ports

import (
	"context"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// ChallengeResult is the outcome of an OTP request.
type ChallengeResult struct {
	Identifier string
	Delivered  bool
}

// VerifyResult is the outcome of a successful OTP verification. NewUser
// means the identifier has no account yet and signup must complete before a
// user record exists; User is nil in that case.
type VerifyResult struct {
	NewUser bool
	User    *domain.User
	Token   string
}

// AuthResult pairs a freshly created or authenticated user with its token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// ProfileSeed carries the optional profile fields collected before signup
// completes.
type ProfileSeed struct {
	Name     string
	Niche    string
	Industry string
}

// IdentityGateway is the boundary to the identity provider. Callers only
// see verified vs rejected; code issuance, storage, and comparison are
// implementation details, so a real provider can replace the playground
// one without touching any caller.
type IdentityGateway interface {
	// RequestOTP issues a verification code for the identifier. Fails with
	// domain.ErrInvalidIdentifier or domain.ErrTooManyRequests. No retry
	// is built in; retry policy belongs to the caller.
	RequestOTP(ctx context.Context, identifier string) (*ChallengeResult, error)

	// VerifyOTP checks the code. On a match for a known identifier the
	// user and a token are returned; for an unseen identifier NewUser is
	// set and signup must follow. A mismatch is domain.ErrInvalidCode.
	VerifyOTP(ctx context.Context, identifier, code string) (*VerifyResult, error)

	// CompleteSignup allocates the account for a verified identifier.
	// domain.ErrUserExists when the identifier already has one.
	CompleteSignup(ctx context.Context, identifier string, role domain.Role, seed ProfileSeed) (*AuthResult, error)
}
