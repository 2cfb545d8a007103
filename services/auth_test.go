package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econosfera/econ_api/dto"
	"github.com/econosfera/econ_api/model"
	"github.com/econosfera/econ_api/shared"
)

func newAuthService(t *testing.T) (*AuthService, *PostgresService) {
	t.Helper()

	ds := newTestDB(t)
	jwtSvc := &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}
	return &AuthService{sqlSvc: ds, jwtSvc: jwtSvc}, ds
}

func TestRegisterGrantsInitialCredits(t *testing.T) {
	authSvc, _ := newAuthService(t)

	resp, err := authSvc.Register(dto.RegisterRequest{
		Email:    "demo@test.com",
		Username: "demo",
		Password: "demo1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, shared.InitialCredits, resp.Credits)
}

func TestLoginWithEmailAndUsername(t *testing.T) {
	authSvc, _ := newAuthService(t)

	_, err := authSvc.Register(dto.RegisterRequest{
		Email:    "demo@test.com",
		Username: "demo",
		Password: "demo1234",
	})
	require.NoError(t, err)

	resp, err := authSvc.Login(dto.LoginRequest{
		EmailOrUsername: "demo@test.com",
		Password:        "demo1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "demo", resp.User.Username)

	resp, err = authSvc.Login(dto.LoginRequest{
		EmailOrUsername: "demo",
		Password:        "demo1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "demo@test.com", resp.User.Email)
}

func TestLoginRejectionsAreUniform(t *testing.T) {
	authSvc, ds := newAuthService(t)

	_, err := authSvc.Register(dto.RegisterRequest{
		Email:    "demo@test.com",
		Username: "demo",
		Password: "demo1234",
	})
	require.NoError(t, err)

	// A federated account carries no hash and can never pass credential login.
	_, err = ds.CreateAccount(&model.Account{
		Email:        "fed@test.com",
		Username:     "fed",
		AuthProvider: shared.AuthProviderGoogle,
	})
	require.NoError(t, err)

	cases := []dto.LoginRequest{
		{EmailOrUsername: "demo@test.com", Password: "wrongpass"},
		{EmailOrUsername: "ghost@test.com", Password: "demo1234"},
		{EmailOrUsername: "fed@test.com", Password: "demo1234"},
	}

	var messages []string
	for _, req := range cases {
		_, err := authSvc.Login(req)
		require.Error(t, err)
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode)
		messages = append(messages, appErr.Message)
	}

	// Unknown account, bad password and passwordless account are
	// indistinguishable from the outside.
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[1], messages[2])
}

func TestFederatedSignInUpserts(t *testing.T) {
	authSvc, ds := newAuthService(t)

	req := dto.FederatedSignInRequest{
		Provider: shared.AuthProviderGoogle,
		Email:    "fed@test.com",
		Name:     "Fed User",
	}

	first, err := authSvc.FederatedSignIn(req)
	require.NoError(t, err)
	assert.Equal(t, shared.InitialCredits, first.User.Credits)
	assert.Equal(t, "fed", first.User.Username)

	second, err := authSvc.FederatedSignIn(req)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	var count int64
	require.NoError(t, ds.db.Model(&model.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	account, err := ds.GetAccountByEmail("fed@test.com")
	require.NoError(t, err)
	assert.Empty(t, account.Password)
}

func TestFederatedUsernameCollision(t *testing.T) {
	authSvc, _ := newAuthService(t)

	createTestAccount(t, authSvc.sqlSvc, "demo@other.com", "demo")

	resp, err := authSvc.FederatedSignIn(dto.FederatedSignInRequest{
		Provider: shared.AuthProviderGoogle,
		Email:    "demo@test.com",
		Name:     "Demo",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "demo", resp.User.Username)
	assert.Contains(t, resp.User.Username, "demo_")
}

func TestJWTRoundTrip(t *testing.T) {
	jwtSvc := &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}

	pair, err := jwtSvc.GenerateTokenPair("user-1", shared.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	userID, role, err := jwtSvc.VerifyJWTToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, shared.RoleAdmin, role)

	_, _, err = jwtSvc.VerifyJWTToken("not-a-token")
	require.Error(t, err)

	otherSvc := &JWTService{AccessTokenDuration: time.Hour, jwtSecretKey: "other-secret"}
	_, _, err = otherSvc.VerifyJWTToken(pair.AccessToken)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	jwtSvc := &JWTService{}

	token, err := jwtSvc.ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = jwtSvc.ExtractTokenFromHeader("")
	require.Error(t, err)

	_, err = jwtSvc.ExtractTokenFromHeader("Basic abc123")
	require.Error(t, err)
}
