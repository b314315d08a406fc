package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
)

const callerIDKey = "caller_id"

var errMissingUserID = errors.New("token carries no user id")

// Authenticate accepts HMAC-signed bearer tokens and stores the caller's user
// id in the gin context.
func Authenticate(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		userID, err := parseUserID(strings.TrimSpace(tokenString), key)
		if err != nil {
			logger.Debug(c.Request.Context(), "auth: token rejected", map[string]any{
				"error": err.Error(),
			})
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(callerIDKey, userID)
		c.Request = c.Request.WithContext(logger.WithAttributes(c.Request.Context(), map[string]any{
			"user.id": string(userID),
		}))
		c.Next()
	}
}

// CallerID returns the user id stored by Authenticate, or "" on
// unauthenticated routes.
func CallerID(c *gin.Context) domain.ID {
	value, ok := c.Get(callerIDKey)
	if !ok {
		return ""
	}
	id, _ := value.(domain.ID)
	return id
}

func parseUserID(tokenString string, key []byte) (domain.ID, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))
	if err != nil {
		return "", err
	}

	switch id := claims["id"].(type) {
	case string:
		if id != "" {
			return domain.ID(id), nil
		}
	case float64:
		return domain.ID(fmt.Sprintf("%.0f", id)), nil
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", errMissingUserID
	}
	return domain.ID(subject), nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
