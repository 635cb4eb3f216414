package middleware

import (
	"strings"

	"portfolio/services/credentials"
	"portfolio/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware requires a valid bearer session token and stores the
// account id under "accountID".
func JWTAuthMiddleware(tokens credentials.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, utils.NewUnauthorizedError("Missing or invalid Authorization header"))
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			utils.JSONError(c, utils.NewUnauthorizedError("Invalid token"))
			c.Abort()
			return
		}
		c.Set("accountID", claims.AccountID)
		c.Next()
	}
}
