package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xche909/Galactica/domain"
	"github.com/xche909/Galactica/utils"
)

const ContextAccountID = "accountID"

// AuthMiddleware verifies the Bearer access token and stores the subject
// account ID in the request context.
func AuthMiddleware(accessManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			c.Abort()
			return
		}

		account, err := accessManager.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			var domErr *domain.Error
			if errors.As(err, &domErr) {
				c.JSON(domErr.Status, gin.H{"error": domErr.Message})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(ContextAccountID, account.ID)
		c.Next()
	}
}
