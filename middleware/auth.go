package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/brightshine/laundry-api/config"
)

// CustomClaims carries the application claims from the token.
// PrincipalType is "user" or "shop"; the two principal kinds never
// share claims beyond it.
type CustomClaims struct {
	PrincipalType string `json:"principal_type"`
	Role          string `json:"role,omitempty"`
	ShopID        uint   `json:"shop_id,omitempty"`
	ShopName      string `json:"shop_name,omitempty"`
}

// Validate does nothing beyond satisfying validator.CustomClaims;
// principal-type checks happen in the Require* guards.
func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// IsUser reports whether the claims belong to a platform user token.
func (c *CustomClaims) IsUser() bool {
	return c.PrincipalType == "user"
}

// IsShop reports whether the claims belong to a shop token.
func (c *CustomClaims) IsShop() bool {
	return c.PrincipalType == "shop"
}

// IsAdmin reports whether the claims belong to a staff user token.
func (c *CustomClaims) IsAdmin() bool {
	return c.IsUser() && c.Role == "admin"
}

// EnsureValidToken is a middleware that will check the validity of our JWT.
// Tokens are issued locally and validated as HS256 against JWT_SECRET.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		cfg.JWTIssuer,
		[]string{cfg.JWTAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("Failed to set up the jwt validator")
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Encountered error while validating JWT: %v", err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			log.Printf("Failed to write error response: %v", writeErr)
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			// Store the validated claims in Gin context
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)

			c.Set("principal_subject", token.RegisteredClaims.Subject)
			c.Set("validated_claims", token)

			c.Next()
		}

		// Use the JWT middleware to check the token
		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)

		// On rejection the error handler has already written the 401
		// body; stop the chain so later handlers cannot append to it
		if _, validated := c.Get("validated_claims"); !validated {
			c.Abort()
		}
	}
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get("validated_claims")
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// GetCustomClaims extracts the application claims from the Gin context
func GetCustomClaims(c *gin.Context) (*CustomClaims, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return nil, err
	}

	customClaims, ok := claims.CustomClaims.(*CustomClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Custom claims are not in the expected format"}
	}

	return customClaims, nil
}

// GetUserID extracts the authenticated user's id from the Gin context.
// It fails if the token belongs to a shop principal.
func GetUserID(c *gin.Context) (uint, error) {
	customClaims, err := GetCustomClaims(c)
	if err != nil {
		return 0, err
	}
	if !customClaims.IsUser() {
		return 0, &AuthError{Code: "WRONG_PRINCIPAL", Message: "A user token is required"}
	}
	return subjectID(c)
}

// GetShopID extracts the authenticated shop's id from the Gin context.
// It fails if the token belongs to a user principal.
func GetShopID(c *gin.Context) (uint, error) {
	customClaims, err := GetCustomClaims(c)
	if err != nil {
		return 0, err
	}
	if !customClaims.IsShop() {
		return 0, &AuthError{Code: "WRONG_PRINCIPAL", Message: "A shop token is required"}
	}
	return subjectID(c)
}

// subjectID parses the numeric principal id from the token subject
func subjectID(c *gin.Context) (uint, error) {
	subject, exists := c.Get("principal_subject")
	if !exists {
		return 0, &AuthError{Code: "MISSING_SUBJECT", Message: "Principal subject not found in context"}
	}

	subjectStr, ok := subject.(string)
	if !ok {
		return 0, &AuthError{Code: "INVALID_SUBJECT", Message: "Principal subject is not a string"}
	}

	id, err := strconv.ParseUint(subjectStr, 10, 32)
	if err != nil {
		return 0, &AuthError{Code: "INVALID_SUBJECT", Message: "Principal subject is not a valid id"}
	}

	return uint(id), nil
}

// RequireUser aborts with 403 unless the token carries a user principal
func RequireUser() gin.HandlerFunc {
	return requirePrincipal(func(claims *CustomClaims) bool { return claims.IsUser() },
		"This resource requires a user account")
}

// RequireShop aborts with 403 unless the token carries a shop principal
func RequireShop() gin.HandlerFunc {
	return requirePrincipal(func(claims *CustomClaims) bool { return claims.IsShop() },
		"This resource requires a shop account")
}

// RequireAdmin aborts with 403 unless the token carries a staff user principal
func RequireAdmin() gin.HandlerFunc {
	return requirePrincipal(func(claims *CustomClaims) bool { return claims.IsAdmin() },
		"This resource requires administrator privileges")
}

func requirePrincipal(check func(*CustomClaims) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customClaims, err := GetCustomClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_CLAIMS",
					"message": "Could not retrieve token claims",
				},
			})
			c.Abort()
			return
		}

		if !check(customClaims) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": message,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
