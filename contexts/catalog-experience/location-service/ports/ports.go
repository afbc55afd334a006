package ports

import (
	"context"
	"time"
)

// SentinelCode marks the "no specific country" catalog entry. It deliberately
// lives outside the ISO alpha-2 code space so it can never collide with a real
// country code.
const SentinelCode = "GLOBAL"

type Country struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

func (c Country) IsSentinel() bool {
	return c.Code == SentinelCode
}

// Catalog is an ordered country list. Codes are NOT unique: the upstream
// pricing data carries duplicate-code entries (e.g. "Default INR" next to
// "India"), and lookups must keep returning the first match.
type Catalog []Country

func (cat Catalog) ByCode(code string) (Country, bool) {
	for _, c := range cat {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

func (cat Catalog) Sentinel() Country {
	if c, ok := cat.ByCode(SentinelCode); ok {
		return c
	}
	return Country{Code: SentinelCode, Name: "Global", Currency: "USD"}
}

type Clock interface {
	Now() time.Time
}

// ResolveOptions tunes the location param precedence. Owner-facing views
// ("my courses", "my packages") may disable the profile fallback since the
// user is viewing as a visitor, not pricing for themselves.
type ResolveOptions struct {
	ProfileFallback bool
}

type PreferenceRecord struct {
	SessionID   string
	CountryCode string
	UpdatedAt   time.Time
}

type PreferenceStore interface {
	Get(ctx context.Context, sessionID string) (PreferenceRecord, bool, error)
	Put(ctx context.Context, record PreferenceRecord) error
}
