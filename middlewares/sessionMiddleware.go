package middlewares

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/gin-gonic/gin"
)

// sessionPayload mirrors the JSON stored under "Token:<token>" by Login.
type sessionPayload struct {
	UserId     string `json:"user_id"`
	Role       string `json:"role"`
	BusinessId string `json:"business_id"`
	EmployeeId int    `json:"employee_id"`
	UserName   string `json:"user_name"`
}

// SessionMiddleware resolves the token header against Redis and loads the
// session into the request context. A missing token passes through unchanged;
// role enforcement happens per handler.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}
		var session sessionPayload
		exists, err := config.GetRedisObject("Token:"+token, &session)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUserIdInContext(ctx, session.UserId)
		ctx = utils.SetRoleInContext(ctx, session.Role)
		ctx = utils.SetUserNameInContext(ctx, session.UserName)
		if session.BusinessId != "" {
			ctx = utils.SetBusinessIdInContext(ctx, session.BusinessId)
		}
		if session.EmployeeId != 0 {
			ctx = utils.SetEmployeeIdInContext(ctx, session.EmployeeId)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
