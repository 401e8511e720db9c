//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"cgmd/internal"
	"cgmd/internal/controllers"
	"cgmd/internal/libreview"
	"cgmd/internal/poller"
	"cgmd/internal/providers"
	"cgmd/internal/services"
	"cgmd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewPreferencesProvider,

		libreview.NewClient,
		services.NewAuthService,
		services.NewGlucoseService,
		poller.NewEngine,
		poller.NewStream,
		controllers.NewApiController,
		controllers.NewStreamController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
