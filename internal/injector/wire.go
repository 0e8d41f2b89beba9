//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/volley/internal/config"
)

// InitializeApp builds the server and the logger it writes to.
func InitializeApp(cfg config.Config) (*App, error) {
	wire.Build(ServerSet)
	return nil, nil
}
