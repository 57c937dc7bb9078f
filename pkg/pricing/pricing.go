// Package pricing defines the pricing mechanisms a dataset service can be
// published with: free access or a fixed-rate exchange against a base token.
// Mechanisms are immutable templates; request-specific rates are applied with
// WithRate, which returns a new value and leaves the template untouched.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Type tags the pricing mechanism variant.
type Type string

const (
	// TypeFree grants access without payment (free datatoken dispenser).
	TypeFree Type = "free"
	// TypeFixedRate sells access at a fixed exchange rate against BaseToken.
	TypeFixedRate Type = "fixedRate"
)

// Mechanism describes how access to a dataset service is paid for. A Mechanism
// value attached to a network catalog is a shared template; never set Rate on
// it directly, use WithRate.
type Mechanism struct {
	Type Type `json:"type"`
	// BaseToken is the ERC-20 contract the fixed-rate exchange settles in.
	// Empty for free pricing.
	BaseToken         string `json:"baseTokenAddress,omitempty"`
	BaseTokenDecimals uint8  `json:"baseTokenDecimals,omitempty"`
	DatatokenDecimals uint8  `json:"datatokenDecimals,omitempty"`
	// Rate is the per-access price as a decimal string. The remote protocol
	// carries rates as strings, not floats, to avoid precision loss.
	Rate string `json:"rate,omitempty"`
}

// Free reports whether the mechanism grants access without payment.
func (m Mechanism) Free() bool {
	return m.Type == TypeFree
}

// WithRate returns a copy of the mechanism with the rate set to the decimal
// string form of rate. The receiver is not modified.
func (m Mechanism) WithRate(rate decimal.Decimal) Mechanism {
	out := m
	out.Rate = rate.String()
	return out
}

// Catalog maps canonical uppercase currency codes to a pricing mechanism
// template for one network.
type Catalog map[string]Mechanism

// Lookup resolves a currency code case-insensitively against the catalog.
func (c Catalog) Lookup(code string) (Mechanism, bool) {
	m, ok := c[strings.ToUpper(code)]
	return m, ok
}
