package storage

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/tripmate/internal/common"
	"github.com/dmitrijs2005/tripmate/internal/cryptox"
)

// SaltKey is where Encrypted keeps its key-derivation salt (unencrypted).
const SaltKey = "storage_salt"

// Encrypted seals every value with AES-GCM before handing it to the inner
// store. Values are stored as base64(nonce||ciphertext).
type Encrypted struct {
	inner Storage
	key   []byte
}

// NewEncrypted derives the sealing key from secret and a per-installation
// salt, creating and storing the salt on first use.
func NewEncrypted(ctx context.Context, inner Storage, secret string) (*Encrypted, error) {
	salt, err := loadOrCreateSalt(ctx, inner)
	if err != nil {
		return nil, err
	}
	return &Encrypted{inner: inner, key: cryptox.DeriveKey([]byte(secret), salt)}, nil
}

func loadOrCreateSalt(ctx context.Context, inner Storage) ([]byte, error) {
	encoded, found, err := inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("read storage salt: %w", err)
	}
	if found {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err == nil && len(salt) == cryptox.SaltSize {
			return salt, nil
		}
	}

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	if err := inner.Set(ctx, SaltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("write storage salt: %w", err)
	}
	return salt, nil
}

func (e *Encrypted) Get(ctx context.Context, key string) (string, bool, error) {
	encoded, found, err := e.inner.Get(ctx, key)
	if err != nil || !found {
		return "", found, err
	}
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false, fmt.Errorf("%w: %s", common.ErrCorruptedValue, key)
	}
	plain, err := cryptox.Open(sealed, e.key)
	if err != nil {
		return "", false, fmt.Errorf("%w: %s", common.ErrCorruptedValue, key)
	}
	return string(plain), true, nil
}

func (e *Encrypted) Set(ctx context.Context, key, value string) error {
	sealed, err := e.seal(value)
	if err != nil {
		return err
	}
	return e.inner.Set(ctx, key, sealed)
}

func (e *Encrypted) SetMany(ctx context.Context, values map[string]string) error {
	sealed := make(map[string]string, len(values))
	for k, v := range values {
		s, err := e.seal(v)
		if err != nil {
			return err
		}
		sealed[k] = s
	}
	return SetAll(ctx, e.inner, sealed)
}

func (e *Encrypted) Remove(ctx context.Context, key string) error {
	return e.inner.Remove(ctx, key)
}

func (e *Encrypted) IsAvailable() bool { return e.inner.IsAvailable() }

func (e *Encrypted) seal(value string) (string, error) {
	sealed, err := cryptox.Seal([]byte(value), e.key)
	if err != nil {
		return "", fmt.Errorf("seal value: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}
