//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/api"
	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/controllers"
	"github.com/amaumene/dsnparr/internal/scheduler"
	"github.com/amaumene/dsnparr/internal/services/disney"
	"github.com/amaumene/dsnparr/internal/services/telegram"
)

var checkSet = wire.NewSet(
	disney.NewClient,
	disney.NewCatalog,
	controllers.NewSweepController,
	controllers.NewCheckController,
	wire.Bind(new(controllers.MetadataSource), new(*disney.Client)),
	wire.Bind(new(controllers.ShortLinkResolver), new(*disney.Client)),
	wire.Bind(new(controllers.RegionSource), new(*disney.Catalog)),
)

// InitializeApp wires the server application
func InitializeApp(cfg *config.Config, logger *logrus.Logger) *App {
	wire.Build(
		checkSet,
		telegram.NewClient,
		api.NewServer,
		scheduler.NewScheduler,
		wire.Bind(new(scheduler.CatalogRefresher), new(*disney.Catalog)),
		NewApp,
	)
	return nil
}

// InitializeCLI wires the one-shot command application
func InitializeCLI(cfg *config.Config, logger *logrus.Logger) *CLI {
	wire.Build(checkSet, NewCLI)
	return nil
}
