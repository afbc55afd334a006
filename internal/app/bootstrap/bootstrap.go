package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	cataloggateway "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway"
	gatewayhttpclient "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/adapters/httpclient"
	locationservice "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service"
	locationmemory "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/adapters/memory"
	locationpostgres "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/adapters/postgres"
	locationapp "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/application"
	locationports "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
	pricingservice "github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service"
	sessionservice "github.com/16SULPHUR/courseify/contexts/identity-access/session-service"
	sessionmemory "github.com/16SULPHUR/courseify/contexts/identity-access/session-service/adapters/memory"
	sessionpostgres "github.com/16SULPHUR/courseify/contexts/identity-access/session-service/adapters/postgres"
	sessionports "github.com/16SULPHUR/courseify/contexts/identity-access/session-service/ports"
	uploadservice "github.com/16SULPHUR/courseify/contexts/media/upload-service"
	"github.com/16SULPHUR/courseify/internal/platform/config"
	"github.com/16SULPHUR/courseify/internal/platform/db"
	"github.com/16SULPHUR/courseify/internal/platform/httpserver"
	"github.com/16SULPHUR/courseify/internal/platform/webui"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type WebApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildWeb() (*WebApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "web")

	countries, err := locationapp.LoadCatalog()
	if err != nil {
		return nil, err
	}

	// Browser state (location preference, session record) persists in
	// postgres when a DSN is configured and in process memory otherwise.
	var pg *db.Postgres
	var prefs locationports.PreferenceStore
	var prefClock locationports.Clock
	var sessions sessionports.TokenStore
	var sessionClock sessionports.Clock

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := locationpostgres.Migrate(pg.DB); err != nil {
			return nil, err
		}
		if err := sessionpostgres.Migrate(pg.DB); err != nil {
			return nil, err
		}
		prefs = locationpostgres.NewStore(pg.DB, logger)
		prefClock = locationpostgres.SystemClock{}
		sessions = sessionpostgres.NewStore(pg.DB, logger)
		sessionClock = sessionpostgres.SystemClock{}
	} else {
		prefStore := locationmemory.NewStore()
		prefs, prefClock = prefStore, prefStore
		sessionStore := sessionmemory.NewStore()
		sessions, sessionClock = sessionStore, sessionStore
	}

	locationModule := locationservice.NewModule(locationservice.Dependencies{
		Catalog:     countries,
		Preferences: prefs,
		Clock:       prefClock,
		Logger:      logger,
	})
	pricingModule := pricingservice.NewModule(pricingservice.Dependencies{Logger: logger})

	// The session service supplies bearer tokens to the gateway, and the
	// gateway authenticates for the session service. Build the session side
	// first and close the cycle after the gateway exists.
	sessionModule := sessionservice.NewModule(sessionservice.Dependencies{
		Store:  sessions,
		Clock:  sessionClock,
		Logger: logger,
	})

	var gatewayModule cataloggateway.Module
	if cfg.MarketplaceAPIURL != "" {
		client := gatewayhttpclient.New(cfg.MarketplaceAPIURL, sessionModule.Service, nil, logger)
		gatewayModule = cataloggateway.NewModule(cataloggateway.Dependencies{
			Upstream: client,
			Logger:   logger,
		})
	} else {
		gatewayModule = cataloggateway.NewInMemoryModule(sessionModule.Service, logger)
	}
	sessionModule.Service.Auth = gatewayModule.Service

	var uploadModule uploadservice.Module
	if cfg.ImageUploadURL != "" {
		uploadModule = uploadservice.NewHTTPModule(cfg.ImageUploadURL, nil, logger)
	} else {
		uploadModule = uploadservice.NewInMemoryModule(logger)
	}

	renderer, err := webui.NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(httpserver.Dependencies{
		Location:             locationModule,
		Gateway:              gatewayModule,
		Sessions:             sessionModule,
		Uploads:              uploadModule,
		Views:                webui.Builder{Pricing: pricingModule.Service},
		Renderer:             renderer,
		Countries:            countries,
		Logger:               logger,
		Addr:                 normalizeAddr(cfg.HTTPPort),
		CookieName:           cfg.SessionCookieName,
		OwnerProfileFallback: cfg.OwnerViewProfileFallback,
	})
	return &WebApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *WebApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("web app started",
			"event", "bootstrap_web_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *WebApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
