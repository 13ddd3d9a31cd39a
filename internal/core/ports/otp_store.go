package ports

import "context"

// OTPStore issues and checks one-time codes. Codes are stored hashed with a
// TTL; Check consumes an attempt and fails with domain.ErrInvalidCode,
// domain.ErrCodeExpired, or domain.ErrTooManyAttempts. A successful Check
// invalidates the code.
type OTPStore interface {
	Issue(ctx context.Context, identifier string) (code string, err error)
	Check(ctx context.Context, identifier, code string) error
}
