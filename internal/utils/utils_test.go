package utils_test

import (
	"testing"
	"time"

	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/cafehnd/cafehnd_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("cafe-2025")
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash("cafe-2025", hash))
	assert.False(t, utils.CheckPasswordHash("cafe-2024", hash))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	a, err := utils.GenerateTemporaryPassword()
	require.NoError(t, err)
	b, err := utils.GenerateTemporaryPassword()
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestJWTRoundTrip(t *testing.T) {
	code := "048"
	user := domain.User{UserID: "user-1", Role: domain.RoleExporterEditor, ExporterCode: &code}

	token, err := utils.GenerateJWT(user, testSecret, time.Hour, "cafehnd-test")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, testSecret, "cafehnd-test")
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: "user-1", Role: domain.RoleExporterEditor, ExporterCode: "048"}, claims.Identity())
	assert.Equal(t, "cafehnd-test", claims.Issuer)
}

func TestJWTRejectsWrongSecretAndExpiry(t *testing.T) {
	user := domain.User{UserID: "user-1", Role: domain.RoleAdmin}

	token, err := utils.GenerateJWT(user, testSecret, time.Hour, "cafehnd-test")
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(token, "other-secret", "cafehnd-test")
	assert.Error(t, err)

	expired, err := utils.GenerateJWT(user, testSecret, -time.Minute, "cafehnd-test")
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(expired, testSecret, "cafehnd-test")
	assert.Error(t, err)
}

func TestJWTRejectsForeignIssuer(t *testing.T) {
	user := domain.User{UserID: "user-1", Role: domain.RoleAdmin}

	token, err := utils.GenerateJWT(user, testSecret, time.Hour, "another-service")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, testSecret, "cafehnd-test")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
