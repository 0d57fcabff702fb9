package gex

import (
	"sort"

	"github.com/dgnsrekt/gexlab/internal/chain"
)

// StrikeExposure holds aggregated call/put gamma exposure at one
// strike, in legacy units. Net is call minus put.
type StrikeExposure struct {
	Strike float64 `json:"strike"`
	Call   float64 `json:"call"`
	Put    float64 `json:"put"`
	Net    float64 `json:"net"`
}

// StrikeRange is an optional inclusive strike bound. Nil ends are
// unbounded.
type StrikeRange struct {
	Min *float64
	Max *float64
}

func (r StrikeRange) contains(strike float64) bool {
	if r.Min != nil && strike < *r.Min {
		return false
	}
	if r.Max != nil && strike > *r.Max {
		return false
	}
	return true
}

// AggregateByStrike sums legacy-convention exposure per (strike,
// contract type), pivots into call/put columns with missing sides as
// zero, and returns the strikes in ascending order. The range filter is
// applied after aggregation.
func AggregateByStrike(snap *chain.Snapshot, multiplier float64, rng StrikeRange) []StrikeExposure {
	byStrike := make(map[float64]*StrikeExposure)
	for _, row := range snap.Rows {
		e, ok := byStrike[row.Strike]
		if !ok {
			e = &StrikeExposure{Strike: row.Strike}
			byStrike[row.Strike] = e
		}
		switch row.ContractType {
		case chain.Call:
			e.Call += strikeRowGEX(row, multiplier)
		case chain.Put:
			e.Put += strikeRowGEX(row, multiplier)
		}
	}

	exposures := make([]StrikeExposure, 0, len(byStrike))
	for _, e := range byStrike {
		if !rng.contains(e.Strike) {
			continue
		}
		e.Net = e.Call - e.Put
		exposures = append(exposures, *e)
	}
	sort.Slice(exposures, func(i, j int) bool {
		return exposures[i].Strike < exposures[j].Strike
	})
	return exposures
}

// ZeroGammaLevel finds the strike where net exposure first crosses
// zero, linearly interpolated between the first adjacent pair with
// differing sign (zero counts as its own sign, so touching zero is a
// crossing). ok is false when the net curve is one-signed throughout or
// has fewer than two points.
func ZeroGammaLevel(exposures []StrikeExposure) (level float64, ok bool) {
	for i := 0; i+1 < len(exposures); i++ {
		a, b := exposures[i].Net, exposures[i+1].Net
		if numSign(a) == numSign(b) {
			continue
		}
		ka, kb := exposures[i].Strike, exposures[i+1].Strike
		return ka + (0-a)*(kb-ka)/(b-a), true
	}
	return 0, false
}

func numSign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
