// Package gex computes gamma exposure metrics from option chain
// snapshots: the per-strike GEX profile with its zero-gamma level, the
// near-spot net GEX scalar, directional gamma imbalance, and volume by
// strike.
//
// Two GEX unit conventions coexist here on purpose. The strike profile
// uses the legacy convention (gamma * OI * multiplier * spot); the
// near-spot metrics use the spot-squared gross convention below. They
// measure different units and are never interchangeable.
package gex

import "github.com/dgnsrekt/gexlab/internal/chain"

// DefaultMultiplier is the standard options contract multiplier.
const DefaultMultiplier = 100.0

// GrossGEX is the dealer-agnostic exposure magnitude of one contract
// row under the spot-squared convention:
//
//	gamma * openInterest * spot^2 * multiplier * gammaScale
func GrossGEX(gamma, openInterest, spot, multiplier, gammaScale float64) float64 {
	return gamma * openInterest * spot * spot * multiplier * gammaScale
}

// DealerSign converts a gross magnitude into a signed metric under an
// assumed dealer position. Dealers modeled as net short options hedge
// with the opposite of the raw long-option exposure.
func DealerSign(dealerShort bool) float64 {
	if dealerShort {
		return -1.0
	}
	return 1.0
}

// strikeRowGEX is the legacy per-row convention used by the strike
// profile: gamma * OI * multiplier * underlying price, no spot square,
// no scale, no dealer sign. Kept separate from GrossGEX; see the
// package comment.
func strikeRowGEX(row chain.OptionRow, multiplier float64) float64 {
	return row.Gamma * row.OpenInterest * multiplier * row.UnderlyingPrice
}
