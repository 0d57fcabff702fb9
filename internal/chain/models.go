package chain

import "math"

// ContractType distinguishes calls from puts. Values match the
// contract_type column of the snapshot CSVs.
type ContractType string

const (
	Call ContractType = "CALL"
	Put  ContractType = "PUT"
)

// OptionRow is a single contract observation from one snapshot file.
// Numeric fields that could not be parsed from the CSV are NaN.
type OptionRow struct {
	Strike          float64
	ContractType    ContractType
	Gamma           float64
	OpenInterest    float64
	Delta           float64
	UnderlyingPrice float64
	Volume          float64
}

// Snapshot is one capture of an option chain. Rows share a single
// underlying price; the first row's value is authoritative. Snapshots
// are immutable after load.
type Snapshot struct {
	Rows []OptionRow
}

func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Rows) == 0
}

// Spot returns the underlying price from the first row. ok is false for
// an empty snapshot or when the source file had no usable
// underlying_price column.
func (s *Snapshot) Spot() (spot float64, ok bool) {
	if s.Empty() {
		return 0, false
	}
	spot = s.Rows[0].UnderlyingPrice
	if math.IsNaN(spot) {
		return 0, false
	}
	return spot, true
}
