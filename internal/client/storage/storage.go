// Package storage provides the key/value collaborator the session manager
// persists into.
//
// Implementations:
//   - SQLite: the local database (metadata table).
//   - Memory: process-local map.
//   - Resilient: a primary store with an in-memory fallback, so a broken or
//     missing database never blocks a session transition.
//   - Encrypted: a decorator sealing values at rest.
package storage

import "context"

// Storage is a string key/value store.
//
// Get reports found=false for absent keys. Remove of an absent key is not an
// error. IsAvailable reports whether values survive a process restart.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	IsAvailable() bool
}

// BatchSetter is implemented by stores that can write several keys
// atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, values map[string]string) error
}

// SetAll writes values through s, atomically when s implements BatchSetter
// and key by key otherwise.
func SetAll(ctx context.Context, s Storage, values map[string]string) error {
	if b, ok := s.(BatchSetter); ok {
		return b.SetMany(ctx, values)
	}
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}
