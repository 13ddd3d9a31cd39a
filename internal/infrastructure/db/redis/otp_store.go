package redis

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

const (
	codeTTL       = 5 * time.Minute
	requestWindow = 10 * time.Minute
	maxRequests   = 3
	maxAttempts   = 5
	codeDigits    = 6
)

// OTPStore issues and checks one-time codes in Redis. Only a bcrypt hash
// of the code is stored; the plaintext exists just long enough to hand to
// the delivery channel.
//
// Key formats:
//
//	otp:code:<identifier>     bcrypt hash, expires after codeTTL
//	otp:attempts:<identifier> failed-check counter, expires with the code
//	otp:requests:<identifier> issuance counter over requestWindow
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTPStore wrapping the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Issue generates a fresh code for the identifier, replacing any previous
// one. domain.ErrTooManyRequests once the issuance window is exhausted.
func (s *OTPStore) Issue(ctx context.Context, identifier string) (string, error) {
	requests, err := s.client.Incr(ctx, s.requestKey(identifier)).Result()
	if err != nil {
		return "", fmt.Errorf("otp request count: %w", err)
	}
	if requests == 1 {
		_ = s.client.Expire(ctx, s.requestKey(identifier), requestWindow).Err()
	}
	if requests > maxRequests {
		return "", domain.ErrTooManyRequests
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	if err := s.client.Set(ctx, s.codeKey(identifier), string(hash), codeTTL).Err(); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	_ = s.client.Del(ctx, s.attemptKey(identifier)).Err()

	return code, nil
}

// Check consumes one verification attempt. A successful check invalidates
// the code so it cannot be replayed.
func (s *OTPStore) Check(ctx context.Context, identifier, code string) error {
	hash, err := s.client.Get(ctx, s.codeKey(identifier)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrCodeExpired
		}
		return fmt.Errorf("load code: %w", err)
	}

	attempts, err := s.client.Incr(ctx, s.attemptKey(identifier)).Result()
	if err != nil {
		return fmt.Errorf("otp attempt count: %w", err)
	}
	if attempts == 1 {
		_ = s.client.Expire(ctx, s.attemptKey(identifier), codeTTL).Err()
	}
	if attempts > maxAttempts {
		_ = s.client.Del(ctx, s.codeKey(identifier)).Err()
		return domain.ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return domain.ErrInvalidCode
	}

	_ = s.client.Del(ctx, s.codeKey(identifier), s.attemptKey(identifier)).Err()
	return nil
}

func generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

func (s *OTPStore) codeKey(identifier string) string {
	return "otp:code:" + identifier
}

func (s *OTPStore) attemptKey(identifier string) string {
	return "otp:attempts:" + identifier
}

func (s *OTPStore) requestKey(identifier string) string {
	return "otp:requests:" + identifier
}
