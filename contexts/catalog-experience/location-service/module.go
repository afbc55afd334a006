package locationservice

import (
	"log/slog"

	httpadapter "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/adapters/http"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/adapters/memory"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/application"
	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Catalog     ports.Catalog
	Preferences ports.PreferenceStore
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Catalog: deps.Catalog,
		Prefs:   deps.Preferences,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) (Module, error) {
	catalog, err := application.LoadCatalog()
	if err != nil {
		return Module{}, err
	}
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Catalog:     catalog,
		Preferences: store,
		Clock:       store,
		Logger:      logger,
	})
	module.Store = store
	return module, nil
}
