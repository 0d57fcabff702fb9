package series

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dgnsrekt/gexlab/internal/chain"
	"github.com/dgnsrekt/gexlab/internal/gex"
)

const snapshotHeader = "strike,contract_type,gamma,open_interest,delta,underlying_price"

func writeSnapshot(t *testing.T, dir, name string, spot float64, gamma string) {
	t.Helper()
	body := fmt.Sprintf("%s\n%g,CALL,%s,1000,0.45,%g\n", snapshotHeader, spot, gamma, spot)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
}

func spotMetric(snap *chain.Snapshot) float64 {
	spot, _ := snap.Spot()
	return spot
}

func TestLoadRequiredArguments(t *testing.T) {
	loader := NewLoader(t.TempDir(), 1, zap.NewNop())

	for _, req := range []Request{
		{Symbol: "", Expiration: "2025-12-24"},
		{Symbol: "SPXW", Expiration: ""},
	} {
		_, err := loader.Load(context.Background(), req, spotMetric)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("req %+v: expected ErrInvalidArgument, got %v", req, err)
		}
	}
}

func TestLoadNoFiles(t *testing.T) {
	loader := NewLoader(t.TempDir(), 1, zap.NewNop())
	_, err := loader.Load(context.Background(), Request{Symbol: "SPXW", Expiration: "2025-12-24"}, spotMetric)
	if !errors.Is(err, chain.ErrNoSnapshots) {
		t.Errorf("expected ErrNoSnapshots, got %v", err)
	}
}

func TestLoadOrdersByCaptureTime(t *testing.T) {
	dir := t.TempDir()
	// Written out of chronological order on purpose; the zero-padded
	// time component makes lexicographic order chronological.
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-00-00.csv", 4000, "0.001")
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-30-00.csv", 4020, "0.001")
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-05-00.csv", 4010, "0.001")

	for _, workers := range []int{1, 4} {
		loader := NewLoader(dir, workers, zap.NewNop())
		series, err := loader.Load(context.Background(), Request{Symbol: "SPXW", Expiration: "2025-12-24"}, spotMetric)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(series) != 3 {
			t.Fatalf("workers=%d: expected 3 points, got %d", workers, len(series))
		}
		wantTimes := []string{"09-00-00", "09-05-00", "09-30-00"}
		wantValues := []float64{4000, 4010, 4020}
		for i, p := range series {
			if got := p.Time.Format("15-04-05"); got != wantTimes[i] {
				t.Errorf("workers=%d point %d at %s, want %s", workers, i, got, wantTimes[i])
			}
			if p.Value != wantValues[i] {
				t.Errorf("workers=%d point %d = %v, want %v", workers, i, p.Value, wantValues[i])
			}
		}
	}
}

func TestLoadSkipsCorruptFileWithWarning(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-00-00.csv", 4000, "0.001")
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-05-00.csv", 4000, "bogus")
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-30-00.csv", 4000, "0.001")

	core, logs := observer.New(zap.WarnLevel)
	loader := NewLoader(dir, 1, zap.New(core))

	params := gex.DefaultNetGEXParams()
	series, err := loader.Load(context.Background(), Request{Symbol: "SPXW", Expiration: "2025-12-24"}, func(snap *chain.Snapshot) float64 {
		return gex.NetGEXNearSpot(snap, params)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 points after skipping corrupt file, got %d", len(series))
	}

	warned := false
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			if f.Key == "file" && strings.Contains(f.String, "09-05-00") {
				warned = true
			}
		}
	}
	if !warned {
		t.Error("expected a warning naming the corrupt file")
	}
}

func TestLoadSkipsShortFilenamesSilently(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-00-00.csv", 4000, "0.001")
	// Matches the glob but lacks the capture time segments.
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_notes.csv", 4000, "0.001")

	core, logs := observer.New(zap.WarnLevel)
	loader := NewLoader(dir, 1, zap.New(core))

	series, err := loader.Load(context.Background(), Request{Symbol: "SPXW", Expiration: "2025-12-24"}, spotMetric)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
	if n := logs.Len(); n != 0 {
		t.Errorf("short filenames should be skipped without warnings, got %d log entries", n)
	}
}

func TestLoadAllFilesBad(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_yesterday_noonish.csv", 4000, "0.001")

	loader := NewLoader(dir, 1, zap.NewNop())
	_, err := loader.Load(context.Background(), Request{Symbol: "SPXW", Expiration: "2025-12-24"}, spotMetric)
	if !errors.Is(err, ErrNoValidData) {
		t.Errorf("expected ErrNoValidData, got %v", err)
	}
}

func TestLoadSampleDateFilter(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-17_09-00-00.csv", 4000, "0.001")
	writeSnapshot(t, dir, "SPXW_exp2025-12-24_2025-12-18_09-00-00.csv", 4100, "0.001")

	loader := NewLoader(dir, 1, zap.NewNop())
	series, err := loader.Load(context.Background(), Request{
		Symbol:     "SPXW",
		Expiration: "2025-12-24",
		SampleDate: "2025-12-18",
	}, spotMetric)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 1 || series[0].Value != 4100 {
		t.Errorf("sample date filter: got %+v, want single 4100 point", series)
	}
}
