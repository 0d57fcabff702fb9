// Package candle loads OHLCV candlestick data from interval CSV files.
package candle

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Candle is one OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

func (c Candle) Up() bool {
	return c.Close >= c.Open
}

// Candle files are named {symbol}_{interval}_min_{date}.csv.
func Filename(symbol string, intervalMinutes int, date string) string {
	return fmt.Sprintf("%s_%d_min_%s.csv", symbol, intervalMinutes, date)
}

// Load reads the candle file for a symbol/interval/date from dir.
func Load(dir, symbol string, intervalMinutes int, date string) ([]Candle, error) {
	path := filepath.Join(dir, Filename(symbol, intervalMinutes, date))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	candles, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return candles, nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Decode parses candle CSV data with a datetime, open, high, low,
// close, volume header.
func Decode(r io.Reader) ([]Candle, error) {
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
	for _, name := range []string{"datetime", "open", "high", "low", "close", "volume"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	num := func(record []string, name string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(record[cols[name]]), 64)
	}

	var candles []Candle
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		line++

		ts, err := parseTime(strings.TrimSpace(record[cols["datetime"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		c := Candle{Time: ts}
		for name, dst := range map[string]*float64{
			"open": &c.Open, "high": &c.High, "low": &c.Low,
			"close": &c.Close, "volume": &c.Volume,
		} {
			v, err := num(record, name)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %q: %w", line, name, err)
			}
			*dst = v
		}
		candles = append(candles, c)
	}

	return candles, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// FilterSession keeps candles whose clock time falls within
// [start, end], both in HH:MM form.
func FilterSession(candles []Candle, start, end string) ([]Candle, error) {
	from, err := time.Parse("15:04", start)
	if err != nil {
		return nil, fmt.Errorf("parsing session start: %w", err)
	}
	to, err := time.Parse("15:04", end)
	if err != nil {
		return nil, fmt.Errorf("parsing session end: %w", err)
	}

	fromMin := from.Hour()*60 + from.Minute()
	toMin := to.Hour()*60 + to.Minute()

	var out []Candle
	for _, c := range candles {
		m := c.Time.Hour()*60 + c.Time.Minute()
		if m >= fromMin && m <= toMin {
			out = append(out, c)
		}
	}
	return out, nil
}
