// Package money fixes how amounts are rendered. Importing it makes every
// decimal.Decimal marshal as a bare JSON number, which is what stored blobs
// and API clients expect.
package money

import "github.com/shopspring/decimal"

// Symbol prefixes amounts shown to users.
const Symbol = "₹"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Format renders an amount for display, e.g. "₹20" or "₹7.5".
func Format(d decimal.Decimal) string {
	return Symbol + d.String()
}

// Valid reports whether d can be a charge: zero or more.
func Valid(d decimal.Decimal) bool {
	return !d.IsNegative()
}
