package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = TokenSettings{Secret: "test-secret", Issuer: "office-seating", Audience: "office-seating-clients", TTL: time.Hour}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	tok, err := NewAccessToken(settings, "u-1", "admin@example.com", "Admin User", []string{"Admin", "User"}, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), tok.Exp, time.Second)

	claims, err := ParseAccessToken(settings, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, []string{"Admin", "User"}, claims.Roles)
	assert.NotEmpty(t, claims.ID)
}

func TestAccessTokenIDsAreUnique(t *testing.T) {
	now := time.Now().UTC()
	a, err := NewAccessToken(settings, "u-1", "e", "n", nil, now)
	require.NoError(t, err)
	b, err := NewAccessToken(settings, "u-1", "e", "n", nil, now)
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestParseAccessTokenRejects(t *testing.T) {
	now := time.Now().UTC()
	tok, err := NewAccessToken(settings, "u-1", "e", "n", nil, now)
	require.NoError(t, err)

	wrongSecret := settings
	wrongSecret.Secret = "other"
	_, err = ParseAccessToken(wrongSecret, tok.Token)
	assert.Error(t, err)

	wrongIssuer := settings
	wrongIssuer.Issuer = "someone-else"
	_, err = ParseAccessToken(wrongIssuer, tok.Token)
	assert.Error(t, err)

	wrongAudience := settings
	wrongAudience.Audience = "mobile"
	_, err = ParseAccessToken(wrongAudience, tok.Token)
	assert.Error(t, err)

	expired, err := NewAccessToken(settings, "u-1", "e", "n", nil, now.Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = ParseAccessToken(settings, expired.Token)
	assert.Error(t, err)

	_, err = NewAccessToken(TokenSettings{}, "u-1", "e", "n", nil, now)
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	now := time.Now().UTC()
	rt, err := NewRefreshToken(7, now)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	assert.Equal(t, now.Add(7*24*time.Hour), rt.Exp)
	assert.Len(t, HashRefreshRaw(rt.Raw), 64)
	assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Admin@123", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "Admin@123"))
	assert.False(t, VerifyPassword(hash, "admin@123"))
}

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"valid", "Admin@123", ""},
		{"too short", "Ad@1", "at least 8 characters"},
		{"no upper", "admin@123", "an upper-case letter"},
		{"no lower", "ADMIN@123", "a lower-case letter"},
		{"no digit", "Admin@abc", "a digit"},
		{"no symbol", "Admin1234", "a non-alphanumeric character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPasswordPolicy(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG("http://localhost:3000/seats/5", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
