package pricingservice

import (
	"log/slog"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/application"
)

type Module struct {
	Service application.Service
}

type Dependencies struct {
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{Logger: deps.Logger},
	}
}
