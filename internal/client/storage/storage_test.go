package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripmate/internal/common"
	"github.com/dmitrijs2005/tripmate/internal/logging"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

// brokenStore fails every operation.
type brokenStore struct {
	removeCalls int
}

var errBroken = errors.New("disk on fire")

func (b *brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (b *brokenStore) Set(context.Context, string, string) error         { return errBroken }
func (b *brokenStore) Remove(context.Context, string) error {
	b.removeCalls++
	return errBroken
}
func (b *brokenStore) IsAvailable() bool { return true }

// flakyStore fails writes while failWrites is set.
type flakyStore struct {
	*Memory
	failWrites bool
}

func (f *flakyStore) Set(ctx context.Context, k, v string) error {
	if f.failWrites {
		return errBroken
	}
	return f.Memory.Set(ctx, k, v)
}

// plainStore is a Storage without SetMany.
type plainStore struct {
	*Memory
	sets int
}

func (p *plainStore) Set(ctx context.Context, k, v string) error {
	p.sets++
	return p.Memory.Set(ctx, k, v)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "k", "v"))
	v, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Remove(ctx, "k"))
	require.NoError(t, m.Remove(ctx, "k"))
	_, found, _ = m.Get(ctx, "k")
	assert.False(t, found)
	assert.False(t, m.IsAvailable())
}

func TestSQLite_RoundTrip(t *testing.T) {
	s := NewSQLite(setupDB(t))
	ctx := context.Background()

	_, found, err := s.Get(ctx, common.StorageKeyToken)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetAll(ctx, s, map[string]string{
		common.StorageKeyToken: "t",
		common.StorageKeyUser:  `{"id":"1"}`,
	}))

	v, found, err := s.Get(ctx, common.StorageKeyUser)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":"1"}`, v)

	require.NoError(t, s.Remove(ctx, common.StorageKeyUser))
	_, found, err = s.Get(ctx, common.StorageKeyUser)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, s.IsAvailable())
}

func TestSetAll_FallsBackToSingleWrites(t *testing.T) {
	p := &plainStore{Memory: NewMemory()}
	require.NoError(t, SetAll(context.Background(), p, map[string]string{"a": "1", "b": "2"}))
	assert.Equal(t, 2, p.sets)
}

func TestResilient_NilPrimaryIsMemoryOnly(t *testing.T) {
	r := NewResilient(nil, logging.Discard())
	ctx := context.Background()

	assert.False(t, r.IsAvailable())
	require.NoError(t, r.Set(ctx, "k", "v"))
	v, found, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)

	require.NoError(t, r.Remove(ctx, "k"))
	_, found, _ = r.Get(ctx, "k")
	assert.False(t, found)
}

func TestResilient_PrimaryFailuresFallBackToMemory(t *testing.T) {
	b := &brokenStore{}
	r := NewResilient(b, logging.Discard())
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v"))
	require.NoError(t, r.SetMany(ctx, map[string]string{"a": "1"}))

	v, found, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)

	v, found, err = r.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", v)

	// Each failed write also tries to drop the stale key from the primary.
	assert.Equal(t, 2, b.removeCalls)

	require.NoError(t, r.Remove(ctx, "k"))
	assert.Equal(t, 3, b.removeCalls)
	_, found, _ = r.Get(ctx, "k")
	assert.False(t, found)
}

func TestResilient_FailedWriteDoesNotServeStaleValue(t *testing.T) {
	primary := &flakyStore{Memory: NewMemory()}
	r := NewResilient(primary, logging.Discard())
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.StorageKeyToken, "A"))

	primary.failWrites = true
	require.NoError(t, r.Set(ctx, common.StorageKeyToken, "B"))

	v, found, err := r.Get(ctx, common.StorageKeyToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "B", v)

	_, found, _ = primary.Get(ctx, common.StorageKeyToken)
	assert.False(t, found, "old value must not survive in the primary")

	primary.failWrites = false
	require.NoError(t, r.Set(ctx, common.StorageKeyToken, "C"))
	v, _, _ = r.Get(ctx, common.StorageKeyToken)
	assert.Equal(t, "C", v)
	_, found, _ = r.mem.Get(ctx, common.StorageKeyToken)
	assert.False(t, found, "memory copy is cleared once the primary takes the value")
}

func TestResilient_FailedBatchDoesNotServeStaleValues(t *testing.T) {
	primary := &flakyStore{Memory: NewMemory()}
	r := NewResilient(primary, logging.Discard())
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string]string{
		common.StorageKeyToken: "t1",
		common.StorageKeyUser:  "u1",
	}))

	primary.failWrites = true
	require.NoError(t, r.SetMany(ctx, map[string]string{
		common.StorageKeyToken: "t2",
		common.StorageKeyUser:  "u2",
	}))

	v, _, _ := r.Get(ctx, common.StorageKeyToken)
	assert.Equal(t, "t2", v)
	v, _, _ = r.Get(ctx, common.StorageKeyUser)
	assert.Equal(t, "u2", v)
}

func TestResilient_PrefersPrimary(t *testing.T) {
	primary := NewSQLite(setupDB(t))
	r := NewResilient(primary, logging.Discard())
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v"))

	v, found, err := primary.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
	assert.True(t, r.IsAvailable())
}

func TestEncrypted_RoundTripAndAtRest(t *testing.T) {
	inner := NewMemory()
	ctx := context.Background()

	e, err := NewEncrypted(ctx, inner, "12345")
	require.NoError(t, err)

	require.NoError(t, e.Set(ctx, common.StorageKeyToken, "secret-token"))

	raw, found, err := inner.Get(ctx, common.StorageKeyToken)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, raw, "secret-token")

	v, found, err := e.Get(ctx, common.StorageKeyToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "secret-token", v)

	_, found, err = e.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEncrypted_ReusesSaltAcrossInstances(t *testing.T) {
	inner := NewMemory()
	ctx := context.Background()

	first, err := NewEncrypted(ctx, inner, "12345")
	require.NoError(t, err)
	require.NoError(t, first.SetMany(ctx, map[string]string{common.StorageKeyUser: `{"id":"7"}`}))

	second, err := NewEncrypted(ctx, inner, "12345")
	require.NoError(t, err)
	v, found, err := second.Get(ctx, common.StorageKeyUser)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":"7"}`, v)
}

func TestEncrypted_WrongSecretReportsCorruption(t *testing.T) {
	inner := NewMemory()
	ctx := context.Background()

	right, err := NewEncrypted(ctx, inner, "right")
	require.NoError(t, err)
	require.NoError(t, right.Set(ctx, "k", "v"))

	wrong, err := NewEncrypted(ctx, inner, "wrong")
	require.NoError(t, err)
	_, _, err = wrong.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrCorruptedValue)

	require.NoError(t, inner.Set(ctx, "k", "%%%not-base64"))
	_, _, err = right.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrCorruptedValue)
}

func TestEncrypted_SaltReadFailure(t *testing.T) {
	_, err := NewEncrypted(context.Background(), &brokenStore{}, "x")
	require.ErrorIs(t, err, errBroken)
}
