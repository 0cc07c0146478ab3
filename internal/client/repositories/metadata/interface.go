// Package metadata stores small named values (session token, cached profile)
// in the local client database.
package metadata

import (
	"context"
)

// Repository is a key/value view over the metadata table.
//
// Get returns common.ErrNotFound when the key is absent. Delete of an absent
// key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
