package http

type CountryDTO struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Selected bool   `json:"selected,omitempty"`
}

type SelectLocationRequest struct {
	CountryCode string `json:"country_code"`
}

type SelectLocationResponse struct {
	Status string     `json:"status"`
	Data   CountryDTO `json:"data"`
}

type ListCountriesResponse struct {
	Status string       `json:"status"`
	Data   []CountryDTO `json:"data"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
