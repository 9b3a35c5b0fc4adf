package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "this-is-a-test-secret-key-of-32-chars-plus",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
		BcryptCost:                  4,
	}
}

// newTestJWTService creates a service with a fixed, controllable clock.
func newTestJWTService(t *testing.T, now time.Time) (*hmacJWTService, *time.Time) {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl := svc.(*hmacJWTService)
	current := now
	impl.timeFunc = func() time.Time { return current }
	return impl, &current
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestJWTService(t, now)
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestJWTService(t, time.Now())
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestJWTService(t, time.Now())
	userID := uuid.New()

	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTService_ExpiredAccessToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, clock := newTestJWTService(t, now)

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Past the lifetime plus the allowed clock skew.
	*clock = now.Add(time.Hour + 3*time.Minute)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ExpiredRefreshToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, clock := newTestJWTService(t, now)

	token, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	*clock = now.Add(7*24*time.Hour + 3*time.Minute)

	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestJWTService_ClockSkewTolerated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, clock := newTestJWTService(t, now)

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Just past expiry but inside the skew window.
	*clock = now.Add(time.Hour + time.Minute)

	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestJWTService(t, time.Now())

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "xxxx"
	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsTokenFromOtherKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestJWTService(t, time.Now())

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-secret-key-also-32-characters-long"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestJWTService(t, time.Now())

	_, err := svc.ValidateToken(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)
	verifier := NewBcryptVerifier()

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hashed)

	assert.NoError(t, verifier.Compare(hashed, "correct horse battery staple"))
	assert.Error(t, verifier.Compare(hashed, "wrong password"))
}
