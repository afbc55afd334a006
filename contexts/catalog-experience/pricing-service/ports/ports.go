package ports

// LocalizedPriceInfo is the transient pricing block the upstream attaches to a
// course or package response. It is display metadata only and never persisted.
type LocalizedPriceInfo struct {
	OriginalPriceUSD  float64  `json:"originalPriceUSD"`
	OriginalCurrency  string   `json:"originalCurrency"`
	LocalizedPrice    *float64 `json:"localizedPrice,omitempty"`
	LocalizedCurrency string   `json:"localizedCurrency,omitempty"`
	AppliedMultiplier *float64 `json:"appliedMultiplier,omitempty"`
	ConversionRate    *float64 `json:"conversionRate,omitempty"`
	Message           string   `json:"message,omitempty"`
	IsBlacklisted     bool     `json:"isBlacklisted,omitempty"`
}

// DisplayPrice is what a card or detail view renders. Amount is already in
// Currency; Multiplier is auxiliary metadata and is never folded into Amount.
type DisplayPrice struct {
	Amount     float64
	HasAmount  bool
	Currency   string
	Multiplier float64
}

func (p DisplayPrice) HasMultiplier() bool {
	return p.Multiplier != 0
}

// Restriction reports whether purchasing is disallowed for the priced region.
type Restriction struct {
	Blacklisted bool
	Message     string
}
