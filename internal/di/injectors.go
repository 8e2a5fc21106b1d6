//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"nodelete/internal"
	"nodelete/internal/controllers"
	"nodelete/internal/host"
	"nodelete/internal/models"
	"nodelete/internal/persistence"
	"nodelete/internal/providers"
	"nodelete/internal/services"
	"nodelete/internal/structures"
)

var hostSet = wire.NewSet(
	host.NewDispatcher,
	host.NewMessageCache,
	host.NewMenuRegistry,
	host.NewToaster,
	host.NewHost,

	wire.Bind(new(services.NotificationBus), new(*host.Dispatcher)),
	wire.Bind(new(services.MessageLookup), new(*host.MessageCache)),
	wire.Bind(new(services.MenuHook), new(*host.MenuRegistry)),
	wire.Bind(new(services.Toaster), new(*host.Toaster)),
	wire.Bind(new(controllers.EventIngester), new(*host.Host)),
	wire.Bind(new(controllers.ChannelMenus), new(*host.MenuRegistry)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewResponseCache,
		wire.Bind(new(providers.LogStatsSource), new(*models.LogStore)),

		models.NewLogStore,
		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,

		hostSet,

		services.NewEventRouter,
		services.NewClearLogMenu,
		services.NewLifecycleManager,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
