package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/flytau/flytau-api/config"
	"github.com/flytau/flytau-api/models"
)

const tokenTTL = 24 * time.Hour

// Claims carried by a login token. Subject is the customer email or the
// manager ID; Role is "customer" or "manager".
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 token for the given principal.
func GenerateToken(cfg *config.Config, subject, role string) (string, error) {
	if cfg.JWTSecret == "" {
		return "", errors.New("jwt secret is empty")
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// parseToken validates a token string and extracts the subject and role.
func parseToken(secret, tokenStr string) (string, string, error) {
	if secret == "" {
		return "", "", errors.New("jwt secret is empty")
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return "", "", err
	}
	if claims.Subject == "" || claims.Role == "" {
		return "", "", errors.New("invalid claims")
	}
	return claims.Subject, claims.Role, nil
}

// bearerToken extracts the token from the Authorization header, if present.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// RequireAuth is a middleware that rejects requests without a valid token.
// On success the principal is stored in the Gin context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "Missing or malformed Authorization header")
			return
		}

		subject, role, err := parseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Printf("Encountered error while validating JWT: %v", err)
			unauthorized(c, "Failed to validate token")
			return
		}

		c.Set("user_id", subject)
		c.Set("user_role", role)
		c.Next()
	}
}

// OptionalAuth resolves the principal when a token is supplied but lets
// unauthenticated (guest) requests through.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		subject, role, err := parseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			// A present but invalid token is rejected rather than silently
			// downgraded to a guest.
			log.Printf("Encountered error while validating JWT: %v", err)
			unauthorized(c, "Failed to validate token")
			return
		}

		c.Set("user_id", subject)
		c.Set("user_role", role)
		c.Next()
	}
}

// RequireManager is a middleware that only lets manager principals through.
// It must be chained after RequireAuth.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRole(c)
		if err != nil || role != models.RoleManager {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN_ROLE",
					"message": "Manager access required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INVALID_TOKEN",
			"message": message,
		},
	})
	c.Abort()
}

// GetUserID extracts the principal's identifier from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetUserRole extracts the principal's role from the Gin context
func GetUserRole(c *gin.Context) (string, error) {
	role, exists := c.Get("user_role")
	if !exists {
		return "", &AuthError{Code: "MISSING_ROLE", Message: "Role not found in context"}
	}

	roleStr, ok := role.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_ROLE", Message: "Role is not a string"}
	}

	return roleStr, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
