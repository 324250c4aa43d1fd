package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/handler/httperr"
	"travel-kernel/internal/pkg/cookie"
	"travel-kernel/internal/pkg/errs"
	"travel-kernel/internal/usecase"

	"github.com/gin-gonic/gin"
)

const ctxActorKey = "actor"

var (
	errTokenRequired = errs.Mark(errs.New("access token required"), errs.ErrUnauthorized)
	errTokenInvalid  = errs.Mark(errs.New("invalid or expired token"), errs.ErrUnauthorized)
	errRoleTooLow    = errs.Mark(errs.New("insufficient permissions"), errs.ErrForbidden)
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokenValidator: tokenValidator}
}

// RequireAuth decodes the bearer token (or access token cookie) into an Actor.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.Abort(c, errTokenRequired)
			return
		}
		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err.Error())
			httperr.Abort(c, errTokenInvalid)
			return
		}
		SetActor(c, actor)
		c.Next()
	}
}

// OptionalAuth records the actor when a valid token is present and never aborts.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if actor, err := m.tokenValidator.ValidateToken(token); err == nil {
				SetActor(c, actor)
			}
		}
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("role check without authentication"), "Internal server error", nil)
			return
		}
		if !actor.Role.AtLeast(minRole) {
			httperr.Abort(c, errRoleTooLow)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

func SetActor(c *gin.Context, actor user.Actor) {
	c.Set(ctxActorKey, actor)
}

func GetActor(c *gin.Context) (user.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return user.Actor{}, false
	}
	actor, ok := v.(user.Actor)
	return actor, ok
}
