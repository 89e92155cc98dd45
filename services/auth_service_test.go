package services

import (
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "https://test.brightshine.app/",
		JWTAudience: "brightshine-test",
	}
}

func parseToken(t *testing.T, cfg *config.Config, tokenString string) *appClaims {
	t.Helper()

	claims := &appClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	assert.True(t, token.Valid)
	return claims
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrongpass"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestGenerateUserToken(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name         string
		user         models.User
		expectedRole string
	}{
		{"Customer token", models.User{ID: 7, Username: "alice", IsStaff: false}, "customer"},
		{"Admin token", models.User{ID: 9, Username: "boss", IsStaff: true}, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString, err := GenerateUserToken(cfg, &tt.user)
			assert.NoError(t, err)

			claims := parseToken(t, cfg, tokenString)
			assert.Equal(t, "user", claims.PrincipalType)
			assert.Equal(t, tt.expectedRole, claims.Role)
			assert.Equal(t, cfg.JWTIssuer, claims.Issuer)
			assert.Contains(t, claims.Audience, cfg.JWTAudience)

			subject, err := claims.GetSubject()
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%d", tt.user.ID), subject)
		})
	}
}

func TestGenerateShopToken(t *testing.T) {
	cfg := testConfig()
	shop := models.Shop{ID: 3, Name: "QuickClean"}

	tokenString, err := GenerateShopToken(cfg, &shop)
	assert.NoError(t, err)

	claims := parseToken(t, cfg, tokenString)
	assert.Equal(t, "shop", claims.PrincipalType)
	assert.Equal(t, uint(3), claims.ShopID)
	assert.Equal(t, "QuickClean", claims.ShopName)
	assert.Empty(t, claims.Role, "Shop tokens carry no user role")
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := models.User{ID: 1, Username: "alice"}

	tokenString, err := GenerateUserToken(cfg, &user)
	assert.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenString, &appClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
