package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("12345")
	salt := []byte("fixed-salt-value")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	assert.Len(t, key1, KeySize)
	assert.True(t, bytes.Equal(key1, key2), "same inputs must give the same key")
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	secret := []byte("12345")
	assert.NotEqual(t, DeriveKey(secret, []byte("salt-1")), DeriveKey(secret, []byte("salt-2")))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt"))
	plaintext := []byte(`{"id":"5","name":"Bob"}`)

	sealed, err := Seal(plaintext, key)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "Bob")

	opened, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestSeal_FreshNonce(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt"))
	a, err := Seal([]byte("x"), key)
	require.NoError(t, err)
	b, err := Seal([]byte("x"), key)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpen_Failures(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt"))
	other := DeriveKey([]byte("other"), []byte("salt"))

	sealed, err := Seal([]byte("payload"), key)
	require.NoError(t, err)

	tests := []struct {
		name   string
		sealed []byte
		key    []byte
	}{
		{name: "wrong key", sealed: sealed, key: other},
		{name: "too short", sealed: []byte{1, 2, 3}, key: key},
		{name: "tampered", sealed: append(append([]byte(nil), sealed[:len(sealed)-1]...), sealed[len(sealed)-1]^0xFF), key: key},
		{name: "bad key size", sealed: sealed, key: []byte("short")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.sealed, tt.key)
			require.Error(t, err)
		})
	}
}
