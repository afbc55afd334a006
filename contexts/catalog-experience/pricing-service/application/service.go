package application

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/pricing-service/ports"
)

type Service struct {
	Logger *slog.Logger
}

// SelectDisplayPrice picks what a view shows for an entity. The localized
// price is used only when both the amount and its currency are present;
// otherwise the authoritative USD base applies. A multiplier of exactly 1 is
// not surfaced.
func (s Service) SelectDisplayPrice(baseUSD *float64, info *ports.LocalizedPriceInfo) ports.DisplayPrice {
	if info != nil && info.LocalizedPrice != nil && info.LocalizedCurrency != "" {
		price := ports.DisplayPrice{
			Amount:    *info.LocalizedPrice,
			HasAmount: true,
			Currency:  info.LocalizedCurrency,
		}
		if info.AppliedMultiplier != nil && *info.AppliedMultiplier != 1 {
			price.Multiplier = *info.AppliedMultiplier
		}
		return price
	}
	if baseUSD == nil {
		return ports.DisplayPrice{}
	}
	return ports.DisplayPrice{
		Amount:    *baseUSD,
		HasAmount: true,
		Currency:  "USD",
	}
}

// Format renders a display price for the en-US locale. An absent amount or
// currency yields the literal "N/A"; an unrecognized currency code falls back
// to a plain numeric rendering. Formatting never fails a view.
func (s Service) Format(price ports.DisplayPrice) string {
	if !price.HasAmount || price.Currency == "" {
		return "N/A"
	}
	unit, err := currency.ParseISO(price.Currency)
	if err != nil {
		return fmt.Sprintf("%.2f %s", price.Amount, price.Currency)
	}
	printer := message.NewPrinter(language.AmericanEnglish)
	return printer.Sprint(currency.Symbol(unit.Amount(price.Amount)))
}

// Restriction evaluates the blacklist rule: a blacklisted region keeps its
// normal price display but the purchase affordance must be suppressed and the
// upstream message shown.
func (s Service) Restriction(info *ports.LocalizedPriceInfo) ports.Restriction {
	if info == nil || !info.IsBlacklisted {
		return ports.Restriction{}
	}
	msg := info.Message
	if msg == "" {
		msg = "Purchases are not available in your region."
	}
	return ports.Restriction{Blacklisted: true, Message: msg}
}
