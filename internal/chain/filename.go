package chain

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Snapshot filenames follow
// {symbol}_exp{expiration}_{capture-date}_{capture-time}.csv, e.g.
// $SPX_exp2025-12-24_2025-12-18_14-30-00.csv. Date and time components
// are zero padded, so lexicographic filename order is chronological
// order.
const captureTimeLayout = "2006-01-02_15-04-05"

var (
	ErrNoSnapshots = errors.New("no option chain snapshots found")

	// ErrNameFormat marks filenames that do not carry the four
	// underscore-delimited segments of the naming convention.
	ErrNameFormat = errors.New("filename does not match snapshot naming convention")
)

// SnapshotPattern builds the glob for a symbol/expiration pair. An
// empty sampleDate matches captures from any date.
func SnapshotPattern(symbol, expiration, sampleDate string) string {
	if sampleDate != "" {
		return fmt.Sprintf("%s_exp%s_%s_*.csv", symbol, expiration, sampleDate)
	}
	return fmt.Sprintf("%s_exp%s_*.csv", symbol, expiration)
}

// FindSnapshots lists snapshot files for the filter, sorted
// lexicographically. Returns ErrNoSnapshots when nothing matches.
func FindSnapshots(dir, symbol, expiration, sampleDate string) ([]string, error) {
	pattern := SnapshotPattern(symbol, expiration, sampleDate)
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w for pattern %s in %s", ErrNoSnapshots, pattern, dir)
	}
	sort.Strings(matches)
	return matches, nil
}

// LatestSnapshot returns the most recent snapshot file for the filter,
// relying on the lexicographic ordering contract.
func LatestSnapshot(dir, symbol, expiration string) (string, error) {
	matches, err := FindSnapshots(dir, symbol, expiration, "")
	if err != nil {
		return "", err
	}
	return matches[len(matches)-1], nil
}

// ParseCaptureTime extracts the capture timestamp embedded in a
// snapshot filename. Returns ErrNameFormat for names with fewer than
// four segments so callers can skip those without logging.
func ParseCaptureTime(path string) (time.Time, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "_")
	if len(parts) < 4 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNameFormat, filepath.Base(path))
	}
	ts, err := time.Parse(captureTimeLayout, parts[2]+"_"+parts[3])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing capture time from %s: %w", filepath.Base(path), err)
	}
	return ts, nil
}
