package gex

import (
	"fmt"
	"sort"

	"github.com/dgnsrekt/gexlab/internal/chain"
)

// Side selects which contract types a volume query covers.
type Side string

const (
	SideAll  Side = "ALL"
	SideCall Side = "CALL"
	SidePut  Side = "PUT"
)

// StrikeVolume holds traded volume at one strike, split by side.
type StrikeVolume struct {
	Strike float64 `json:"strike"`
	Call   float64 `json:"call"`
	Put    float64 `json:"put"`
}

func (v StrikeVolume) Total() float64 {
	return v.Call + v.Put
}

// VolumeFilter narrows a volume-by-strike query. TopN > 0 keeps only
// the N strikes with the highest combined volume; the result is still
// returned in ascending strike order.
type VolumeFilter struct {
	Side  Side
	Range StrikeRange
	TopN  int
}

// VolumeByStrike aggregates per-strike traded volume from a snapshot.
func VolumeByStrike(snap *chain.Snapshot, f VolumeFilter) ([]StrikeVolume, error) {
	if f.Side == "" {
		f.Side = SideAll
	}
	if f.Side != SideAll && f.Side != SideCall && f.Side != SidePut {
		return nil, fmt.Errorf("side must be ALL, CALL or PUT, got %q", f.Side)
	}

	byStrike := make(map[float64]*StrikeVolume)
	for _, row := range snap.Rows {
		if f.Side != SideAll && Side(row.ContractType) != f.Side {
			continue
		}
		v, ok := byStrike[row.Strike]
		if !ok {
			v = &StrikeVolume{Strike: row.Strike}
			byStrike[row.Strike] = v
		}
		switch row.ContractType {
		case chain.Call:
			v.Call += row.Volume
		case chain.Put:
			v.Put += row.Volume
		}
	}

	volumes := make([]StrikeVolume, 0, len(byStrike))
	for _, v := range byStrike {
		if !f.Range.contains(v.Strike) {
			continue
		}
		volumes = append(volumes, *v)
	}
	sort.Slice(volumes, func(i, j int) bool {
		return volumes[i].Strike < volumes[j].Strike
	})

	if f.TopN > 0 && f.TopN < len(volumes) {
		ranked := make([]StrikeVolume, len(volumes))
		copy(ranked, volumes)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Total() > ranked[j].Total()
		})
		keep := make(map[float64]bool, f.TopN)
		for _, v := range ranked[:f.TopN] {
			keep[v.Strike] = true
		}
		trimmed := volumes[:0]
		for _, v := range volumes {
			if keep[v.Strike] {
				trimmed = append(trimmed, v)
			}
		}
		volumes = trimmed
	}

	return volumes, nil
}
