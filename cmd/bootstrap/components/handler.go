package components

import (
	"travel-kernel/internal/handler"
	"travel-kernel/internal/handler/api"
	"travel-kernel/internal/handler/middleware"
	"travel-kernel/internal/infra/docstore"
	"travel-kernel/internal/infra/uow"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewBookingHandler,
		api.NewBillingHandler,
		api.NewCardHandler,
		api.NewAvailabilityHandler,
		NewHealthHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

// NewHealthHandler reports readiness of both stores.
func NewHealthHandler(pg *uow.PostgresUoW, docs *docstore.Store) *api.HealthHandler {
	return api.NewHealthHandler(pg, docs)
}

type handlerParams struct {
	fx.In

	Checkout     *api.CheckoutHandler
	Booking      *api.BookingHandler
	Billing      *api.BillingHandler
	Card         *api.CardHandler
	Availability *api.AvailabilityHandler
	Health       *api.HealthHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Checkout:     p.Checkout,
		Booking:      p.Booking,
		Billing:      p.Billing,
		Card:         p.Card,
		Availability: p.Availability,
		Health:       p.Health,
	}
}
