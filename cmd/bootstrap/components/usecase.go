package components

import (
	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/usecase"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/usecase/queries"
	"travel-kernel/internal/usecase/saga"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) card.Policy {
		return card.Policy{AcceptTestCards: cfg.Vault.AcceptTestCards}
	},
	func(cfg config.Config) queries.AvailabilitySettings {
		return queries.AvailabilitySettings{HoldHorizon: cfg.Booking.HoldHorizon}
	},
	func(cfg config.Config) commands.BookingSettings {
		return commands.BookingSettings{
			HoldHorizon: cfg.Booking.HoldHorizon,
			Compensation: saga.Policy{
				Attempts: cfg.Booking.CompensationAttempts,
				Backoff:  cfg.Booking.CompensationBackoff,
			},
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewCardUseCase,
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewBillingQueries,
		queries.NewAvailabilityQueries,
		queries.NewCardQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
