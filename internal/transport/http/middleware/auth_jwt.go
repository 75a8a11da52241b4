package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jahir-soochna/internal/core/auth"
	resp "jahir-soochna/internal/transport/http/response"
)

// AuthJWT 校验 Bearer token；requireRole 非空时再做角色检查
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, http.StatusForbidden, "Access denied: Insufficient role")
			return
		}
		c.Set("userId", claims.UID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}
