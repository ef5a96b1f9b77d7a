package middleware

import (
	"Tripmate/internal/pkg/logger"
	"Tripmate/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为 0
func AuthOptionalMiddleware(checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(logger.UserIDKey, uint64(0))

		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}
		if signature, err := security.ExtractSignature(token); err == nil {
			if revoked, err := checker.IsTokenRevoked(c.Request.Context(), signature); err != nil || revoked {
				c.Next()
				return
			}
		}

		setIdentity(c, claims)
		c.Next()
	}
}
