package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/handler/api"
	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups every API handler mounted by the router.
type Handlers struct {
	Checkout     *api.CheckoutHandler
	Booking      *api.BookingHandler
	Billing      *api.BillingHandler
	Card         *api.CardHandler
	Availability *api.AvailabilityHandler
	Health       *api.HealthHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, auth *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, auth)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.RequestLogger())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, auth *middleware.AuthMiddleware) {
	engine.GET("/health", h.Health.Health)
	engine.GET("/ready", h.Health.Ready)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := []gin.HandlerFunc{auth.RequireRoleAtLeast(user.RoleAdmin)}

	engine.GET("/availability/:variant/:listingId", auth.OptionalAuth(), h.Availability.Remaining)

	authed := engine.Group("")
	authed.Use(auth.RequireAuth())
	{
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.Checkout},
			{Method: http.MethodPost, Path: "/payment", Handler: h.Checkout.Pay},
		})

		bookings := authed.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "/fail", Handler: h.Booking.Fail, Mw: adminOnly},
			{Method: http.MethodPost, Path: "/expire", Handler: h.Booking.Expire, Mw: adminOnly},
			{Method: http.MethodGet, Path: "/user/:userId", Handler: h.Booking.ListByUser},
			{Method: http.MethodGet, Path: "/:bookingId", Handler: h.Booking.Get},
			{Method: http.MethodDelete, Path: "/:bookingId", Handler: h.Booking.Cancel},
		})

		billing := authed.Group("/billing")
		addRoutes(billing, []route{
			{Method: http.MethodGet, Path: "/search", Handler: h.Billing.Search},
			{Method: http.MethodGet, Path: "/user/:userId", Handler: h.Billing.ListByUser},
			{Method: http.MethodGet, Path: "/:billingId", Handler: h.Billing.Get},
		})

		cards := authed.Group("/users/:userId/cards")
		addRoutes(cards, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Card.Add},
			{Method: http.MethodGet, Path: "", Handler: h.Card.List},
			{Method: http.MethodPut, Path: "/:cardId", Handler: h.Card.Update},
			{Method: http.MethodDelete, Path: "/:cardId", Handler: h.Card.Delete},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
