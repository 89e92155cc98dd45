package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightshine/laundry-api/config"
	"github.com/brightshine/laundry-api/models"
)

// tokenTTL is the lifetime of issued access tokens.
const tokenTTL = 24 * time.Hour

// appClaims is the JWT payload issued for both principal kinds.
// Users carry a role; shops carry their shop id and name. The
// principal_type claim keeps the two disjoint at the middleware.
type appClaims struct {
	PrincipalType string `json:"principal_type"`
	Role          string `json:"role,omitempty"`
	ShopID        uint   `json:"shop_id,omitempty"`
	ShopName      string `json:"shop_name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateUserToken creates a signed JWT for a platform user.
func GenerateUserToken(cfg *config.Config, user *models.User) (string, error) {
	claims := appClaims{
		PrincipalType: "user",
		Role:          user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

// GenerateShopToken creates a signed JWT for a shop session.
func GenerateShopToken(cfg *config.Config, shop *models.Shop) (string, error) {
	claims := appClaims{
		PrincipalType: "shop",
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			Subject:   fmt.Sprintf("%d", shop.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
