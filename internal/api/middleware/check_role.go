package middleware

import (
	"Tripmate/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 当前用户角色必须在允许列表中
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, required := range requiredRoles {
			if required == role {
				c.Next()
				return
			}
		}

		response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
		c.Abort()
	}
}
