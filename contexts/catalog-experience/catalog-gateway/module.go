package cataloggateway

import (
	"log/slog"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/adapters/memory"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/application"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
)

type Module struct {
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Upstream ports.Upstream
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{
			Upstream: deps.Upstream,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule wires the gateway against the seeded in-process upstream.
// Used by tests and by local runs without a configured marketplace URL.
func NewInMemoryModule(tokens ports.TokenSource, logger *slog.Logger) Module {
	store := memory.NewStore(tokens)
	module := NewModule(Dependencies{
		Upstream: store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
