package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/CATyPH67/shop-api/internal/platform/logger"
	"github.com/CATyPH67/shop-api/internal/requestdata"
)

// OwnerClaims is the token shape the identity provider issues. This engine
// performs no authentication itself; it only trusts the signed owner id.
type OwnerClaims struct {
	OwnerID uint   `json:"owner_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	log       *logger.Logger
	jwtSecret string
}

func NewAuthMiddleware(log *logger.Logger, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), jwtSecret: jwtSecret}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		claims := &OwnerClaims{}
		parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(am.jwtSecret), nil
		})
		if err != nil || !parsed.Valid || claims.OwnerID == 0 {
			am.log.Debug("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			rd = &requestdata.RequestData{}
		}
		rd.OwnerID = claims.OwnerID
		rd.Email = claims.Email
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
