package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		pepper   string
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", cost: "", wantCost: 12},
		{name: "minimum cost", cost: "10", wantCost: 10},
		{name: "maximum cost", cost: "14", wantCost: 14},
		{name: "cost below minimum", cost: "9", wantErr: true},
		{name: "cost above maximum", cost: "15", wantErr: true},
		{name: "non-numeric cost", cost: "twelve", wantErr: true},
		{name: "with pepper", cost: "12", pepper: "spicy", wantCost: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	password := "correct-horse-battery"
	hash, err := cfg.HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, cfg.VerifyPassword(password, hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
	assert.False(t, cfg.VerifyPassword(password, ""))
	assert.False(t, cfg.VerifyPassword(password, "not-a-bcrypt-hash"))

	// bcrypt salts, so the same password never hashes the same twice
	hash2, err := cfg.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestPasswordConfig_Pepper(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper-one")
	peppered, err := NewPasswordConfig()
	require.NoError(t, err)

	password := "correct-horse-battery"
	hash, err := peppered.HashPassword(password)
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword(password, hash))

	// The same hash is useless without the pepper, and useless with a
	// rotated one.
	t.Setenv("PASSWORD_PEPPER", "")
	plain, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.False(t, plain.VerifyPassword(password, hash))

	t.Setenv("PASSWORD_PEPPER", "pepper-two")
	rotated, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.False(t, rotated.VerifyPassword(password, hash))
}

func TestPasswordConfig_RejectsOver72Bytes(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	// bcrypt caps input at 72 bytes and the pepper counts toward it
	hash, err := cfg.HashPassword(strings.Repeat("a", 100))
	require.Error(t, err)
	assert.Empty(t, hash)

	t.Setenv("PASSWORD_PEPPER", strings.Repeat("p", 64))
	peppered, err := NewPasswordConfig()
	require.NoError(t, err)
	_, err = peppered.HashPassword("nine-byte")
	require.Error(t, err)
}
