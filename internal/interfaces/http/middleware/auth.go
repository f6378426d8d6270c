package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	sharedconfig "helpdesk/internal/shared/config"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/utils"
)

// Claims is the token payload issued by the identity service.
type Claims struct {
	UserID uint     `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token against the shared secret and stores the
// user identity on the request context.
func Auth(cfg *sharedconfig.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authorization header missing"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid authorization header"))
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.UserID == 0 {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("token carries no user"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_roles", claims.Roles)
		c.Next()
	}
}
