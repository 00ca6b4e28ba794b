package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{name: "min cost", cost: bcrypt.MinCost},
		{name: "default cost", cost: bcrypt.DefaultCost},
		{name: "max cost", cost: bcrypt.MaxCost},
		{name: "too low", cost: 3, wantErr: true},
		{name: "too high", cost: 32, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := NewBcryptHasher(tc.cost)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hashed, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2a$04$"))

	assert.NoError(t, h.Compare(hashed, "correct horse"))
	assert.ErrorIs(t, h.Compare(hashed, "wrong horse"), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Compare(hashed, ""), ErrPasswordMismatch)
}

func TestBcryptHasher_SaltedPerCall(t *testing.T) {
	t.Parallel()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, h.Compare(first, "same password"))
	assert.NoError(t, h.Compare(second, "same password"))
}

func TestBcryptHasher_MalformedHashFailsClosed(t *testing.T) {
	t.Parallel()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	for _, hashed := range []string{"", "not-a-hash", "$2a$04$short"} {
		err := h.Compare(hashed, "anything")
		assert.ErrorIs(t, err, ErrPasswordMismatch, "hash %q", hashed)
	}
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	t.Parallel()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}
