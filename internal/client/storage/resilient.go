package storage

import (
	"context"

	"github.com/dmitrijs2005/tripmate/internal/logging"
)

// Resilient fronts a primary store (possibly nil) with an in-memory
// fallback. Primary failures are logged and never returned.
//
// Memory only ever holds values the primary failed to take, so reads check
// it first. A failed primary write also drops the key from the primary so a
// restart cannot resurrect the older value.
type Resilient struct {
	primary Storage
	mem     *Memory
	log     logging.Logger
}

// NewResilient wraps primary. A nil primary yields a memory-only store that
// reports IsAvailable() == false.
func NewResilient(primary Storage, log logging.Logger) *Resilient {
	return &Resilient{primary: primary, mem: NewMemory(), log: log}
}

func (r *Resilient) Get(ctx context.Context, key string) (string, bool, error) {
	if v, found, _ := r.mem.Get(ctx, key); found {
		return v, true, nil
	}
	if r.primary == nil {
		return "", false, nil
	}
	v, found, err := r.primary.Get(ctx, key)
	if err != nil {
		r.log.Warn(ctx, "storage read failed", "key", key, "error", err)
		return "", false, nil
	}
	return v, found, nil
}

func (r *Resilient) Set(ctx context.Context, key, value string) error {
	if r.primary != nil {
		err := r.primary.Set(ctx, key, value)
		if err == nil {
			return r.mem.Remove(ctx, key)
		}
		r.log.Warn(ctx, "storage write failed, keeping value in memory", "key", key, "error", err)
		r.dropFromPrimary(ctx, key)
	}
	return r.mem.Set(ctx, key, value)
}

func (r *Resilient) SetMany(ctx context.Context, values map[string]string) error {
	if r.primary != nil {
		err := SetAll(ctx, r.primary, values)
		if err == nil {
			for k := range values {
				_ = r.mem.Remove(ctx, k)
			}
			return nil
		}
		r.log.Warn(ctx, "storage batch write failed, keeping values in memory", "error", err)
		for k := range values {
			r.dropFromPrimary(ctx, k)
		}
	}
	return SetAll(ctx, r.mem, values)
}

// dropFromPrimary removes a key whose new value could not be written.
func (r *Resilient) dropFromPrimary(ctx context.Context, key string) {
	if err := r.primary.Remove(ctx, key); err != nil {
		r.log.Warn(ctx, "storage remove of stale value failed", "key", key, "error", err)
	}
}

func (r *Resilient) Remove(ctx context.Context, key string) error {
	if r.primary != nil {
		if err := r.primary.Remove(ctx, key); err != nil {
			r.log.Warn(ctx, "storage remove failed", "key", key, "error", err)
		}
	}
	return r.mem.Remove(ctx, key)
}

func (r *Resilient) IsAvailable() bool {
	return r.primary != nil && r.primary.IsAvailable()
}
