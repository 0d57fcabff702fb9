package gex

import (
	"math"
	"testing"

	"github.com/dgnsrekt/gexlab/internal/chain"
)

func TestNetGEXNearSpot(t *testing.T) {
	snap := &chain.Snapshot{Rows: []chain.OptionRow{
		row(95, chain.Call, 0.01, 10, 100),
		row(120, chain.Call, 0.05, 100, 100), // outside the band
	}}

	p := NetGEXParams{StrikeWidth: 10, Multiplier: 100, GammaScale: 0.01, DealerShort: true}
	got := NetGEXNearSpot(snap, p)

	// -1 * 0.01 * 10 * 100^2 * 100 * 0.01
	want := -100.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("NetGEXNearSpot = %v, want %v", got, want)
	}
}

func TestNetGEXNearSpotDealerLong(t *testing.T) {
	snap := &chain.Snapshot{Rows: []chain.OptionRow{
		row(100, chain.Call, 0.01, 10, 100),
	}}

	short := NetGEXNearSpot(snap, NetGEXParams{StrikeWidth: 10, Multiplier: 100, GammaScale: 0.01, DealerShort: true})
	long := NetGEXNearSpot(snap, NetGEXParams{StrikeWidth: 10, Multiplier: 100, GammaScale: 0.01, DealerShort: false})
	if short != -long {
		t.Errorf("flipping dealer_short should negate the metric: short=%v long=%v", short, long)
	}
}

func TestNetGEXNearSpotBandInclusive(t *testing.T) {
	snap := &chain.Snapshot{Rows: []chain.OptionRow{
		row(90, chain.Call, 0.01, 10, 100),  // exactly spot-width
		row(110, chain.Call, 0.01, 10, 100), // exactly spot+width
	}}
	got := NetGEXNearSpot(snap, NetGEXParams{StrikeWidth: 10, Multiplier: 100, GammaScale: 0.01, DealerShort: false})
	if math.Abs(got-200.0) > 1e-9 {
		t.Errorf("band bounds should be inclusive, got %v, want 200", got)
	}
}

func TestNetGEXNearSpotDegenerate(t *testing.T) {
	p := DefaultNetGEXParams()

	if got := NetGEXNearSpot(&chain.Snapshot{}, p); got != 0.0 {
		t.Errorf("empty snapshot: got %v, want 0", got)
	}
	if got := NetGEXNearSpot(nil, p); got != 0.0 {
		t.Errorf("nil snapshot: got %v, want 0", got)
	}

	// No usable underlying price.
	noSpot := &chain.Snapshot{Rows: []chain.OptionRow{{
		Strike: 100, ContractType: chain.Call, Gamma: 0.01,
		OpenInterest: 10, UnderlyingPrice: math.NaN(),
	}}}
	if got := NetGEXNearSpot(noSpot, p); got != 0.0 {
		t.Errorf("missing spot: got %v, want 0", got)
	}

	// Band matches nothing.
	farOnly := &chain.Snapshot{Rows: []chain.OptionRow{
		row(500, chain.Call, 0.01, 10, 100),
	}}
	if got := NetGEXNearSpot(farOnly, p); got != 0.0 {
		t.Errorf("empty band: got %v, want 0", got)
	}
}
