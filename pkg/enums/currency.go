package enums

import "fmt"

// Currency represents supported monetary denominations for order totals.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyCHF Currency = "CHF"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = []Currency{
	CurrencyEUR,
	CurrencyCHF,
	CurrencyUSD,
}

// IsValid reports whether the value matches the canonical currency enum.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCurrency converts the raw string to Currency.
func ParseCurrency(value string) (Currency, error) {
	for _, candidate := range validCurrencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
