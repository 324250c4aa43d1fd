package cookie

import (
	"github.com/gin-gonic/gin"
)

// AccessTokenCookieName is read for browser clients; API clients send a bearer header instead.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
