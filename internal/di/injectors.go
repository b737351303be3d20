//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"repopulse/internal"
	"repopulse/internal/checkpoint"
	"repopulse/internal/controllers"
	"repopulse/internal/providers"
	"repopulse/internal/services"
	"repopulse/internal/source"
	"repopulse/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		services.NewProgress,
		wire.Bind(new(providers.ProgressReporter), new(*services.Progress)),
		providers.NewMetricsProvider,
		providers.NewCacheProvider,

		source.NewGitHubSource,
		source.NewLimiter,
		checkpoint.NewCompressor,
		checkpoint.NewStore,
		wire.Bind(new(checkpoint.StoreInterface), new(*checkpoint.Store)),
		services.NewPipelineService,
		wire.Bind(new(services.PipelineServiceInterface), new(*services.PipelineService)),
		controllers.NewHistoryController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitArchive(cfg *structures.CliFlags) (*internal.Archive, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		services.NewProgress,
		wire.Bind(new(providers.ProgressReporter), new(*services.Progress)),
		providers.NewMetricsProvider,
		checkpoint.NewCompressor,
		checkpoint.NewStore,
		wire.Bind(new(checkpoint.StoreInterface), new(*checkpoint.Store)),
		internal.NewArchive,
	)

	return nil, nil
}
