package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account-api/internal/core/auth"
	resp "account-api/internal/transport/http/response"
)

const KeyAccountID = "accountId"

// AuthBearer 解析 Authorization: Bearer <token>，把账户 ID 放进上下文
func AuthBearer(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortFail(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortFail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(KeyAccountID, claims.UID)
		c.Next()
	}
}
