package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ticketplace/backend/internal/keys"
	"github.com/ticketplace/backend/internal/models"
	"github.com/ticketplace/backend/internal/repo"
	"github.com/ticketplace/backend/internal/tokens"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	kp := &keys.Pair{Private: priv, Public: &priv.PublicKey}

	return &AuthService{
		Repo:     &repo.UserRepo{DB: db},
		Issuer:   tokens.NewIssuer(kp),
		Verifier: tokens.NewVerifier(kp),
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "Alice", "Alice@Example.com", "Password123", "F")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	stored, err := svc.Repo.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, models.DefaultAvatar, stored.Avatar)
	assert.NotEqual(t, "Password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		pass string
	}{
		{name: "too short", pass: "Pass1"},
		{name: "no digit", pass: "Passwordxyz"},
		{name: "no uppercase", pass: "password123"},
		{name: "special characters", pass: "Password123!"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, "Alice", "alice@example.com", tt.pass, "F")
			require.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "Password123", "F")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "ALICE@example.com", "Password456", "F")
	require.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.User{}).
		Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "Alice", "alice@example.com", "Password123", "F")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice@example.com", "Password123")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.NotNil(t, res.User)
	assert.Equal(t, userID, res.User.ID)

	accessClaims, err := svc.Verifier.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.Subject)
	assert.Equal(t, tokens.KindAccess, accessClaims.Kind)

	refreshClaims, err := svc.Verifier.Verify(res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.Subject)
	assert.Equal(t, tokens.KindRefresh, refreshClaims.Kind)
	assert.NotEmpty(t, refreshClaims.ID)
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "Password123", "F")
	require.NoError(t, err)

	res, wrongPassErr := svc.Login(ctx, "alice@example.com", "WrongPass1")
	require.Nil(t, res)
	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)

	res, unknownEmailErr := svc.Login(ctx, "nobody@example.com", "Password123")
	require.Nil(t, res)
	require.ErrorIs(t, unknownEmailErr, ErrInvalidCredentials)

	// No account enumeration: the two failures are indistinguishable.
	assert.Equal(t, wrongPassErr, unknownEmailErr)
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "Alice", "alice@example.com", "Password123", "F")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "alice@example.com", "Password123")
	require.NoError(t, err)

	st := svc.ValidateToken(res.AccessToken)
	assert.True(t, st.Valid)
	assert.Equal(t, userID, st.UserID)

	st = svc.ValidateToken("not-a-jwt")
	assert.False(t, st.Valid)
	assert.Empty(t, st.UserID)
	assert.NotEmpty(t, st.Reason)
}

func TestAuthService_GetAuthenticatedUser(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "Alice", "alice@example.com", "Password123", "F")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "alice@example.com", "Password123")
	require.NoError(t, err)

	user, err := svc.GetAuthenticatedUser(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	// A refresh token is not a bearer credential.
	_, err = svc.GetAuthenticatedUser(ctx, res.RefreshToken)
	require.Error(t, err)

	// A valid token whose subject no longer resolves.
	require.NoError(t, svc.Repo.DB.Delete(&models.User{}, "id = ?", userID).Error)
	_, err = svc.GetAuthenticatedUser(ctx, res.AccessToken)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_GetUser_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	_, err := svc.GetUser(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrUserNotFound)
}
