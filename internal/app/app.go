package app

import (
	"github.com/amaumene/dsnparr/internal/api"
	"github.com/amaumene/dsnparr/internal/controllers"
	"github.com/amaumene/dsnparr/internal/scheduler"
	"github.com/amaumene/dsnparr/internal/services/disney"
)

// App holds everything the server needs
type App struct {
	Catalog   *disney.Catalog
	Server    *api.Server
	Scheduler *scheduler.Scheduler
}

// NewApp creates the server application
func NewApp(catalog *disney.Catalog, server *api.Server, sched *scheduler.Scheduler) *App {
	return &App{
		Catalog:   catalog,
		Server:    server,
		Scheduler: sched,
	}
}

// CLI holds what one-shot commands need
type CLI struct {
	Catalog *disney.Catalog
	Checks  *controllers.CheckController
}

// NewCLI creates the command-line application
func NewCLI(catalog *disney.Catalog, checks *controllers.CheckController) *CLI {
	return &CLI{
		Catalog: catalog,
		Checks:  checks,
	}
}
