package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
)

// SessionService is the single source of truth for per-device
// authentication state. In-memory sessions are mirrored into a SessionVault
// so a device restart restores them; profile edits additionally write
// through to the user store so the account survives the session.
type SessionService struct {
	vault  ports.SessionVault
	users  ports.UserRepository
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionService(vault ports.SessionVault, users ports.UserRepository, logger zerolog.Logger) *SessionService {
	return &SessionService{
		vault:    vault,
		users:    users,
		logger:   logger,
		sessions: make(map[string]domain.Session),
	}
}

// LoadStoredAuth restores the device session from the vault. All read
// failures are soft: a broken or half-written vault entry yields an
// unauthenticated session, never an error to the caller. A lone persisted
// role (picked before login) survives the restore.
func (s *SessionService) LoadStoredAuth(ctx context.Context, deviceID string) (domain.Session, error) {
	s.setLoading(deviceID, true)
	defer s.setLoading(deviceID, false)

	sess := domain.Session{Phase: domain.PhaseUnauthenticated}

	token, tokenErr := s.vault.Get(ctx, deviceID, ports.VaultKeyToken)
	blob, userErr := s.vault.Get(ctx, deviceID, ports.VaultKeyUser)

	if tokenErr == nil && userErr == nil {
		var user domain.User
		if err := json.Unmarshal([]byte(blob), &user); err != nil {
			s.logger.Warn().Err(err).Str("device_id", deviceID).Msg("stored user blob unreadable, discarding session")
			s.reconcile(ctx, deviceID)
		} else {
			sess.Phase = domain.PhaseAuthenticated
			sess.IsAuthenticated = true
			sess.User = &user
			sess.Token = token
			sess.Role = user.Role
		}
	} else if tokenErr == nil || userErr == nil {
		// One of the two login writes survived without the other; purge
		// the orphan so the pair never half-revives.
		s.logger.Warn().Str("device_id", deviceID).Msg("partial stored session, reconciling")
		s.reconcile(ctx, deviceID)
	}

	if !sess.IsAuthenticated {
		if raw, err := s.vault.Get(ctx, deviceID, ports.VaultKeyRole); err == nil {
			if role, err := domain.ParseRole(raw); err == nil {
				sess.Role = role
			}
		}
	}

	s.put(deviceID, sess)
	return sess, nil
}

// Login persists token and user for the device and marks the session
// authenticated. The user blob is written before the token: if the second
// write fails, no token exists and the next LoadStoredAuth reconciles back
// to unauthenticated instead of reviving half a session.
func (s *SessionService) Login(ctx context.Context, deviceID string, user domain.User, token string) (domain.Session, error) {
	blob, err := json.Marshal(user)
	if err != nil {
		return domain.Session{}, fmt.Errorf("marshal user: %w", err)
	}

	if err := s.vault.Set(ctx, deviceID, ports.VaultKeyUser, string(blob)); err != nil {
		return domain.Session{}, fmt.Errorf("persist user: %w", err)
	}
	if err := s.vault.Set(ctx, deviceID, ports.VaultKeyUserID, user.ID); err != nil {
		return domain.Session{}, fmt.Errorf("persist user id: %w", err)
	}
	if err := s.vault.Set(ctx, deviceID, ports.VaultKeyRole, string(user.Role)); err != nil {
		return domain.Session{}, fmt.Errorf("persist role: %w", err)
	}
	if err := s.vault.Set(ctx, deviceID, ports.VaultKeyToken, token); err != nil {
		return domain.Session{}, fmt.Errorf("persist token: %w", err)
	}

	sess := domain.Session{
		Phase:           domain.PhaseAuthenticated,
		IsAuthenticated: true,
		User:            &user,
		Token:           token,
		Role:            user.Role,
	}
	s.put(deviceID, sess)

	s.logger.Info().Str("device_id", deviceID).Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session established")
	return sess, nil
}

// Logout purges all persisted keys and resets the in-memory session.
// Deleting keys that were never written is fine, so logging out twice is a
// no-op, not an error.
func (s *SessionService) Logout(ctx context.Context, deviceID string) error {
	err := s.vault.Delete(ctx, deviceID,
		ports.VaultKeyToken, ports.VaultKeyUserID, ports.VaultKeyUser, ports.VaultKeyRole)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("purge session: %w", err)
	}

	s.put(deviceID, domain.Session{Phase: domain.PhaseUnauthenticated})
	s.logger.Info().Str("device_id", deviceID).Msg("session cleared")
	return nil
}

// UpdateUser shallow-merges the patch into the current user and
// re-persists the full record: first to the user store, then to the vault.
// The store is canonical; a later login on any device must see the merged
// account, not the pre-edit one. Memory is only updated after both writes
// succeed; on failure the caller sees the error and the in-memory user
// keeps its pre-call value.
func (s *SessionService) UpdateUser(ctx context.Context, deviceID string, patch domain.UserPatch) (*domain.User, error) {
	s.mu.RLock()
	sess, ok := s.sessions[deviceID]
	s.mu.RUnlock()
	if !ok || sess.User == nil {
		return nil, domain.ErrNotAuthenticated
	}

	merged := patch.Apply(*sess.User)

	if _, err := s.users.Update(ctx, &merged); err != nil {
		return nil, fmt.Errorf("update user record: %w", err)
	}

	blob, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	if err := s.vault.Set(ctx, deviceID, ports.VaultKeyUser, string(blob)); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	sess = s.sessions[deviceID]
	sess.User = &merged
	s.sessions[deviceID] = sess
	s.mu.Unlock()

	return &merged, nil
}

// SetRole persists a role pre-selection for the device. It does not
// require a user or token; the role is advisory until signup completes.
func (s *SessionService) SetRole(ctx context.Context, deviceID string, role domain.Role) error {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return err
	}
	if err := s.vault.Set(ctx, deviceID, ports.VaultKeyRole, string(role)); err != nil {
		return fmt.Errorf("persist role: %w", err)
	}

	s.mu.Lock()
	sess := s.sessions[deviceID]
	if sess.Phase == "" {
		sess.Phase = domain.PhaseUnauthenticated
	}
	sess.Role = role
	s.sessions[deviceID] = sess
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the device's in-memory session. Unknown
// devices get the empty uninitialized state.
func (s *SessionService) Current(deviceID string) domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[deviceID]
	if !ok {
		return domain.NewSession()
	}
	if sess.User != nil {
		user := *sess.User
		sess.User = &user
	}
	return sess
}

func (s *SessionService) put(deviceID string, sess domain.Session) {
	s.mu.Lock()
	s.sessions[deviceID] = sess
	s.mu.Unlock()
}

func (s *SessionService) setLoading(deviceID string, loading bool) {
	s.mu.Lock()
	sess := s.sessions[deviceID]
	if sess.Phase == "" {
		sess.Phase = domain.PhaseUninitialized
	}
	if loading {
		sess.Phase = domain.PhaseLoading
	}
	sess.IsLoading = loading
	s.sessions[deviceID] = sess
	s.mu.Unlock()
}

// reconcile removes whatever survives of a half-written login pair. Best
// effort: the next load repeats it if this one fails.
func (s *SessionService) reconcile(ctx context.Context, deviceID string) {
	err := s.vault.Delete(ctx, deviceID, ports.VaultKeyToken, ports.VaultKeyUserID, ports.VaultKeyUser)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		s.logger.Warn().Err(err).Str("device_id", deviceID).Msg("session reconcile failed")
	}
}
