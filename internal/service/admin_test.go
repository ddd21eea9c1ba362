package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/srl-logistica/rotaportal/config"
	accessmocks "github.com/srl-logistica/rotaportal/internal/mocks/access"
)

func TestAdminGate_Authenticate_Plaintext(t *testing.T) {
	ctx := context.Background()
	gate := NewAdminGate(AdminGateOptions{
		Config: config.AdminAuthConfig{Username: "123456", Password: "123456"},
	})

	token, err := gate.Authenticate(ctx, "123456", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, gate.IsActive(token))
}

func TestAdminGate_Authenticate_BcryptHash(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	gate := NewAdminGate(AdminGateOptions{
		Config: config.AdminAuthConfig{Username: "admin", PasswordHash: string(hash)},
	})

	token, err := gate.Authenticate(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.True(t, gate.IsActive(token))

	_, err = gate.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminGate_Authenticate_RejectsBadPair(t *testing.T) {
	ctx := context.Background()
	gate := NewAdminGate(AdminGateOptions{
		Config: config.AdminAuthConfig{Username: "123456", Password: "123456"},
	})

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "123456", "654321"},
		{"wrong username", "admin", "123456"},
		{"both wrong", "admin", "hunter2"},
		{"empty pair", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := gate.Authenticate(ctx, tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}
}

func TestAdminGate_IsActive_UnknownToken(t *testing.T) {
	gate := NewAdminGate(AdminGateOptions{
		Config: config.AdminAuthConfig{Username: "123456", Password: "123456"},
	})

	assert.False(t, gate.IsActive(""))
	assert.False(t, gate.IsActive("not-a-token"))
}

func TestAdminGate_Deactivate(t *testing.T) {
	ctx := context.Background()
	broadcast := accessmocks.NewMemoryBroadcaster()
	gate := NewAdminGate(AdminGateOptions{
		Config:    config.AdminAuthConfig{Username: "123456", Password: "123456"},
		Broadcast: broadcast,
	})

	token, err := gate.Authenticate(ctx, "123456", "123456")
	require.NoError(t, err)
	require.True(t, gate.IsActive(token))

	gate.Deactivate(ctx, token)
	assert.False(t, gate.IsActive(token))
	assert.Equal(t, 1, broadcast.Published())

	// Revoking an unknown token is harmless, but views still get nudged.
	gate.Deactivate(ctx, "not-a-token")
	assert.Equal(t, 2, broadcast.Published())
}

func TestAdminGate_TokensAreIndependent(t *testing.T) {
	ctx := context.Background()
	gate := NewAdminGate(AdminGateOptions{
		Config: config.AdminAuthConfig{Username: "123456", Password: "123456"},
	})

	first, err := gate.Authenticate(ctx, "123456", "123456")
	require.NoError(t, err)
	second, err := gate.Authenticate(ctx, "123456", "123456")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	gate.Deactivate(ctx, first)
	assert.False(t, gate.IsActive(first))
	assert.True(t, gate.IsActive(second))
}
