package normalize

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Rates are BRL per unit of currency. BRL itself is always 1.
type Rates map[string]decimal.Decimal

// Convert converts v in currency to BRL.
func (r Rates) Convert(v decimal.Decimal, currency string) (decimal.Decimal, bool) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "BRL" {
		return v, true
	}
	rate, ok := r[currency]
	if !ok {
		return decimal.Zero, false
	}
	return v.Mul(rate), true
}

// Set records a rate, by upper case currency code.
func (r Rates) Set(currency string, rate decimal.Decimal) {
	r[strings.ToUpper(strings.TrimSpace(currency))] = rate
}

// ParseRate parses a "CUR=rate" assignment, like "USD=5.20".
func ParseRate(s string) (string, decimal.Decimal, error) {
	cur, v, ok := strings.Cut(s, "=")
	cur = strings.ToUpper(strings.TrimSpace(cur))
	if !ok || cur == "" {
		return "", decimal.Zero, fmt.Errorf("invalid rate %q (want CUR=rate)", s)
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if !rate.IsPositive() {
		return "", decimal.Zero, fmt.Errorf("invalid rate %q: must be positive", s)
	}
	return cur, rate, nil
}

// LoadRates reads a yaml map of currency to rate:
//
//	USD: 5.20
//	EUR: 6.10
func LoadRates(path string) (Rates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]decimal.Decimal
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rates := make(Rates, len(raw))
	for cur, rate := range raw {
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%s: rate of %s must be positive", path, cur)
		}
		rates.Set(cur, rate)
	}
	return rates, nil
}
