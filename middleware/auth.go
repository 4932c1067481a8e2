package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/util"
)

// SessionAuth validates the session-token header on mutating routes. The
// token is a JWT issued by the /token endpoint.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionToken := c.GetHeader("session-token")
		if sessionToken == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Missing session token",
				Err: fmt.Errorf("session-token header is required"),
			})
			c.Abort()
			return
		}

		if err := util.ParseSessionToken(sessionToken); err != nil {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid or expired session token",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
