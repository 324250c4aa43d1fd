package bootstrap

import (
	"travel-kernel/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule wires configuration, stores and use cases. It is enough for
// one-shot commands such as sweep.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	MongoModule,
	CacheModule,
	EventsModule,
	JWTModule,
	WorkerModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

// Module is the full HTTP server.
var Module = fx.Options(
	CoreModule,
	components.HandlerModule,
	SweeperWorkerModule,
)
