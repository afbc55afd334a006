package uploadservice

import (
	"log/slog"
	"net/http"

	"github.com/16SULPHUR/courseify/contexts/media/upload-service/adapters/httpclient"
	"github.com/16SULPHUR/courseify/contexts/media/upload-service/adapters/memory"
	"github.com/16SULPHUR/courseify/contexts/media/upload-service/application"
	"github.com/16SULPHUR/courseify/contexts/media/upload-service/ports"
)

type Module struct {
	Service application.Service
}

type Dependencies struct {
	Host   ports.Host
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{
			Host:   deps.Host,
			Logger: deps.Logger,
		},
	}
}

func NewHTTPModule(endpoint string, httpc *http.Client, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Host:   httpclient.New(endpoint, httpc, logger),
		Logger: logger,
	})
}

// NewInMemoryModule stores uploads in process memory. Used by local runs
// without a configured image host and by tests.
func NewInMemoryModule(logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Host:   memory.NewHost(),
		Logger: logger,
	})
}
