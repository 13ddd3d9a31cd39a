package ports

import "context"

// Vault keys. One value per key, written individually; the vault has no
// multi-key transaction, so login/logout order their writes defensively
// (see session service).
const (
	VaultKeyToken  = "token"
	VaultKeyUserID = "user_id"
	VaultKeyUser   = "user"
	VaultKeyRole   = "role"
)

// SessionVault is the per-device key-value secure storage the session
// service persists through. Get returns domain.ErrKeyNotFound for absent
// keys; Delete of an absent key is not an error.
type SessionVault interface {
	Get(ctx context.Context, deviceID, key string) (string, error)
	Set(ctx context.Context, deviceID, key, value string) error
	Delete(ctx context.Context, deviceID string, keys ...string) error
}
