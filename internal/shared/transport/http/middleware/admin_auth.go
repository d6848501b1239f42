package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"FrontierSim/internal/shared/security"
	"FrontierSim/internal/shared/transport"
)

const ClaimsKey = "admin_claims"

// AdminAuth 校验 Authorization: Bearer <jwt>，并要求 admin 角色。
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.Unauthorized, "msg": "missing bearer token"})
			return
		}
		claims, err := security.ParseAdmin(token)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.Unauthorized, "msg": "invalid token"})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
