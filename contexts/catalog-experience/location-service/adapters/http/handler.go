package httpadapter

import (
	"context"
	"log/slog"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/application"
	httptransport "github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListCountriesHandler(ctx context.Context, sessionID string) (httptransport.ListCountriesResponse, error) {
	selected, err := h.Service.Selected(ctx, sessionID)
	if err != nil {
		return httptransport.ListCountriesResponse{}, err
	}

	resp := httptransport.ListCountriesResponse{Status: "success"}
	for _, country := range h.Service.Catalog {
		resp.Data = append(resp.Data, httptransport.CountryDTO{
			Code:     country.Code,
			Name:     country.Name,
			Currency: country.Currency,
			Selected: country == selected,
		})
	}
	return resp, nil
}

func (h Handler) SelectLocationHandler(
	ctx context.Context,
	sessionID string,
	req httptransport.SelectLocationRequest,
) (httptransport.SelectLocationResponse, error) {
	country, err := h.Service.Select(ctx, sessionID, req.CountryCode)
	if err != nil {
		return httptransport.SelectLocationResponse{}, err
	}
	return httptransport.SelectLocationResponse{
		Status: "success",
		Data: httptransport.CountryDTO{
			Code:     country.Code,
			Name:     country.Name,
			Currency: country.Currency,
			Selected: true,
		},
	}, nil
}
