package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "account-api/internal/transport/http/response"
)

const KeyOpsHeader = "X-Ops-Key"

// OpsKey 运维端共享密钥鉴权；未配置密钥时整组拒绝
func OpsKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(KeyOpsHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			resp.AbortFail(c, http.StatusUnauthorized, "invalid ops key")
			return
		}
		c.Next()
	}
}
