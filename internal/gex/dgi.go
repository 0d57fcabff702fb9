package gex

import (
	"math"

	"github.com/dgnsrekt/gexlab/internal/chain"
)

// Default delta band selecting moderately-moneyed contracts.
const (
	DefaultMinAbsDelta = 0.15
	DefaultMaxAbsDelta = 0.55
)

// dgiGammaScale is fixed for this metric, as is the dealer-short
// assumption baked into the sign below. DGI is deliberately not
// parameterized like NetGEXParams; the two formulas only share variable
// names.
const dgiGammaScale = 0.01

// DirectionalImbalance measures how dealer gamma concentrates above
// versus below spot among contracts whose |delta| lies in
// [minAbsDelta, maxAbsDelta]. Strikes exactly at spot belong to neither
// side. The result is in [-1, 1]:
//
//	> 0: downside fragile (hedging amplifies down-moves)
//	< 0: upside fragile
//
// Returns 0 when the snapshot has no usable spot, the delta filter
// matches nothing, or both sides are zero.
func DirectionalImbalance(snap *chain.Snapshot, minAbsDelta, maxAbsDelta float64) float64 {
	spot, ok := snap.Spot()
	if !ok {
		return 0.0
	}

	var above, below float64
	for _, row := range snap.Rows {
		absDelta := math.Abs(row.Delta)
		if !(absDelta >= minAbsDelta && absDelta <= maxAbsDelta) {
			continue
		}
		signed := -row.Gamma * row.OpenInterest * spot * spot * dgiGammaScale
		switch {
		case row.Strike > spot:
			above += signed
		case row.Strike < spot:
			below += signed
		}
	}

	denom := math.Abs(above) + math.Abs(below)
	if denom == 0 {
		return 0.0
	}
	dgi := (above - below) / denom
	return math.Max(-1.0, math.Min(1.0, dgi))
}
