// Package injector assembles the server from a loaded configuration.
package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/volley/internal/config"
	"github.com/zeusync/volley/internal/core/controller"
	"github.com/zeusync/volley/internal/core/events/bus"
	"github.com/zeusync/volley/internal/core/game"
	"github.com/zeusync/volley/internal/core/observability/log"
	"github.com/zeusync/volley/internal/server"
)

// App is everything the server binary runs.
type App struct {
	Server *server.Server
	Logger *log.Logger
}

var ServerSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideWorld,
	ProvideOpponent,
	ProvideServerConfig,
	bus.New,
	server.New,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	lc, err := cfg.Log.Build()
	if err != nil {
		return nil, err
	}
	return log.New(lc)
}

func ProvideWorld(cfg config.Config, logger log.Log) (*game.World, error) {
	return game.New(cfg.Game, logger)
}

// ProvideOpponent returns nil when the server-side opponent is disabled.
func ProvideOpponent(cfg config.Config, world *game.World) (*controller.Heuristic, error) {
	if !cfg.Opponent.Enabled {
		return nil, nil
	}
	return controller.NewHeuristic(cfg.Opponent, world)
}

func ProvideServerConfig(cfg config.Config) server.Config {
	return cfg.Server
}
