package api

import (
	"net/http"

	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/handler/httperr"
	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errNoActor = errs.Mark(errs.New("request is not authenticated"), errs.ErrUnauthorized)

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Abort(c, errNoActor)
		return user.Actor{}, false
	}
	return actor, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return false
	}
	return true
}
