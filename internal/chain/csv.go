package chain

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Columns consumed from a snapshot CSV. Extra columns are ignored.
// delta, underlying_price and total_volume are optional; the rest are
// required for any aggregation to make sense.
var requiredColumns = []string{"strike", "contract_type", "gamma", "open_interest"}

// ReadSnapshot loads one option chain CSV into a Snapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snap, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return snap, nil
}

// DecodeSnapshot parses option chain CSV data. The first record is the
// header; unparseable numeric values become NaN rather than errors, so
// a single bad cell does not reject the whole file at this layer.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(record []string, name string) float64 {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return math.NaN()
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}

	snap := &Snapshot{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		volume := field(record, "total_volume")
		if math.IsNaN(volume) {
			volume = 0
		}

		snap.Rows = append(snap.Rows, OptionRow{
			Strike:          field(record, "strike"),
			ContractType:    ContractType(strings.ToUpper(strings.TrimSpace(record[cols["contract_type"]]))),
			Gamma:           field(record, "gamma"),
			OpenInterest:    field(record, "open_interest"),
			Delta:           field(record, "delta"),
			UnderlyingPrice: field(record, "underlying_price"),
			Volume:          volume,
		})
	}

	return snap, nil
}
