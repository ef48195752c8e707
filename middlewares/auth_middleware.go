package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware resolves the acting user for protected routes. Resolution
// order: valid bearer token, then the configured bypass identity. Identity
// lookup failures read as unauthenticated, never as a server error.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, email, ok := resolveIdentity(c); ok {
			c.Set("userID", userID)
			c.Set("email", email)
			c.Next()
			return
		}

		if config.App.AuthPolicy == config.AuthPolicyBypass {
			c.Set("userID", config.App.BypassUserID)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
}

// OptionalAuthMiddleware resolves an identity when one is present but lets
// anonymous requests through. Used by the analysis path, which personalizes
// for known users and still answers for unknown ones.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, email, ok := resolveIdentity(c); ok {
			c.Set("userID", userID)
			c.Set("email", email)
		} else if config.App.AuthPolicy == config.AuthPolicyBypass {
			c.Set("userID", config.App.BypassUserID)
		}
		c.Next()
	}
}

func resolveIdentity(c *gin.Context) (uint, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	secret := []byte(config.App.JWTSecret)
	if len(secret) == 0 {
		return 0, "", false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}

	email, _ := claims["email"].(string)

	// Prefer the userId claim; JSON numbers decode as float64.
	if v, ok := claims["userId"].(float64); ok && v > 0 {
		return uint(v), email, true
	}

	// Fallback: look the user up by email claim.
	if email == "" || config.DB == nil {
		return 0, "", false
	}
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return 0, "", false
	}
	return user.ID, email, true
}
