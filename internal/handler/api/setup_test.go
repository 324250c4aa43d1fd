//go:build unit

package api_test

import (
	"strings"

	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/handler/httperr"
	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// fakeAuth accepts "Bearer <userId>" or "Bearer <userId>:<role>".
func fakeAuth(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		httperr.Abort(c, errs.Mark(errs.New("Unauthorized"), errs.ErrUnauthorized))
		return
	}
	userID, role, found := strings.Cut(token, ":")
	actor := user.Actor{UserID: userID, Role: user.RoleUser}
	if found {
		actor.Role = user.Role(role)
	}
	middleware.SetActor(c, actor)
	c.Next()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}
