package paywall

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Price is a monthly amount in the smallest currency unit.
// For example, $9.99 USD is Amount: 999, Currency: "USD".
type Price struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
	PriceID  string `json:"priceId,omitempty" yaml:"price_id"` // billing provider's price ID
}

// Format renders the price for display in the given language, e.g. "$ 9.99".
func (p Price) Format(tag language.Tag) string {
	unit, err := currency.ParseISO(p.Currency)
	if err != nil {
		return fmt.Sprintf("%d %s", p.Amount, p.Currency)
	}
	scale, _ := currency.Standard.Rounding(unit)
	div := 1.0
	for range scale {
		div *= 10
	}
	return message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(float64(p.Amount) / div)))
}

// Catalog is the pricing reference for paid tiers. It is informational:
// the access engine never consults prices when deciding access.
type Catalog struct {
	prices map[Tier]Price
}

// DefaultCatalog returns the built-in prices: premium 999, pro 1999 (USD, monthly).
func DefaultCatalog() *Catalog {
	return &Catalog{prices: map[Tier]Price{
		TierPremium: {Amount: 999, Currency: "USD"},
		TierPro:     {Amount: 1999, Currency: "USD"},
	}}
}

// NewCatalog builds a catalog from explicit prices. Every paid tier must be priced.
func NewCatalog(prices map[Tier]Price) (*Catalog, error) {
	c := &Catalog{prices: maps.Clone(prices)}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Price returns the price of tier. Free has no price.
func (c *Catalog) Price(tier Tier) (Price, bool) {
	p, ok := c.prices[tier]
	return p, ok
}

// Prices returns a copy of all tier prices.
func (c *Catalog) Prices() map[Tier]Price {
	return maps.Clone(c.prices)
}

// TierForPriceID maps a billing provider price ID back to a tier.
func (c *Catalog) TierForPriceID(priceID string) (Tier, error) {
	if priceID != "" {
		for tier, p := range c.prices {
			if p.PriceID == priceID {
				return tier, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriceID, priceID)
}

// RequirePriceIDs reports ErrMissingPriceID for the first paid tier without a
// billing provider price ID.
func (c *Catalog) RequirePriceIDs() error {
	for _, tier := range Tiers() {
		if !tier.IsPaid() {
			continue
		}
		if p := c.prices[tier]; p.PriceID == "" {
			return fmt.Errorf("%w: tier %q", ErrMissingPriceID, tier)
		}
	}
	return nil
}

func (c *Catalog) validate() error {
	for tier, p := range c.prices {
		if !tier.IsPaid() {
			return errors.Join(ErrInvalidCatalog, fmt.Errorf("tier %q cannot be priced", tier))
		}
		if p.Amount <= 0 {
			return errors.Join(ErrInvalidCatalog, fmt.Errorf("tier %q has non-positive amount %d", tier, p.Amount))
		}
		if _, err := currency.ParseISO(p.Currency); err != nil {
			return errors.Join(ErrInvalidCatalog, err)
		}
	}
	for _, tier := range Tiers() {
		if _, ok := c.prices[tier]; tier.IsPaid() && !ok {
			return errors.Join(ErrInvalidCatalog, fmt.Errorf("tier %q has no price", tier))
		}
	}
	return nil
}

type catalogFile struct {
	Currency string           `yaml:"currency"`
	Tiers    map[string]Price `yaml:"tiers"`
}

// ParseCatalog reads a YAML catalog:
//
//	currency: USD
//	tiers:
//	  premium: {amount: 999, price_id: pri_premium}
//	  pro:     {amount: 1999, price_id: pri_pro}
//
// A tier-level currency overrides the top-level one.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	prices := make(map[Tier]Price, len(f.Tiers))
	for name, p := range f.Tiers {
		tier, err := ParseTier(name)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		if p.Currency == "" {
			p.Currency = f.Currency
		}
		p.Currency = strings.ToUpper(p.Currency)
		prices[tier] = p
	}
	return NewCatalog(prices)
}

// LoadCatalog reads a YAML catalog from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadFile, err)
	}
	return ParseCatalog(data)
}
