package sessionservice

import (
	"log/slog"

	"github.com/16SULPHUR/courseify/contexts/identity-access/session-service/adapters/memory"
	"github.com/16SULPHUR/courseify/contexts/identity-access/session-service/application"
	"github.com/16SULPHUR/courseify/contexts/identity-access/session-service/ports"
)

type Module struct {
	Service *application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Store  ports.TokenStore
	Auth   ports.Authenticator
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.NewService(deps.Store, deps.Auth, deps.Clock, deps.Logger),
	}
}

func NewInMemoryModule(auth ports.Authenticator, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Store:  store,
		Auth:   auth,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
