package gex

import "github.com/dgnsrekt/gexlab/internal/chain"

// NetGEXParams configures the near-spot net GEX metric.
type NetGEXParams struct {
	// StrikeWidth is the half-width of the strike band around spot.
	StrikeWidth float64
	Multiplier  float64
	GammaScale  float64
	// DealerShort models dealers as net short options (sign -1).
	DealerShort bool
}

// DefaultNetGEXParams matches the SPX intraday setup: strikes within
// +/-50 points of spot, contract multiplier 100, gamma scaled to a 1%
// move, dealers short.
func DefaultNetGEXParams() NetGEXParams {
	return NetGEXParams{
		StrikeWidth: 50.0,
		Multiplier:  DefaultMultiplier,
		GammaScale:  0.01,
		DealerShort: true,
	}
}

// NetGEXNearSpot sums dealer-signed gross exposure over strikes within
// StrikeWidth of spot, inclusive. An empty snapshot, a snapshot with no
// usable underlying price, or an empty band all yield 0.
//
// NetGEX > 0: dealer hedging dampens moves (mean reversion).
// NetGEX < 0: dealer hedging amplifies moves (trend risk).
func NetGEXNearSpot(snap *chain.Snapshot, p NetGEXParams) float64 {
	spot, ok := snap.Spot()
	if !ok {
		return 0.0
	}

	sign := DealerSign(p.DealerShort)
	var sum float64
	for _, row := range snap.Rows {
		// NaN strikes fail the inclusion test and drop out of the band.
		if !(row.Strike >= spot-p.StrikeWidth && row.Strike <= spot+p.StrikeWidth) {
			continue
		}
		sum += sign * GrossGEX(row.Gamma, row.OpenInterest, spot, p.Multiplier, p.GammaScale)
	}
	return sum
}
