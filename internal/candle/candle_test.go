package candle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCandles = `datetime,open,high,low,close,volume
2025-12-18 07:55:00,6800.0,6810.0,6795.0,6805.0,1200
2025-12-18 08:00:00,6805.0,6815.0,6800.0,6812.0,1500
2025-12-18 12:30:00,6812.0,6812.5,6790.0,6795.0,2200
2025-12-18 15:00:00,6795.0,6805.0,6793.0,6802.0,1800
2025-12-18 15:05:00,6802.0,6804.0,6799.0,6800.0,900
`

func TestDecode(t *testing.T) {
	candles, err := Decode(strings.NewReader(sampleCandles))
	if err != nil {
		t.Fatal(err)
	}
	if len(candles) != 5 {
		t.Fatalf("expected 5 candles, got %d", len(candles))
	}

	c := candles[1]
	if c.Open != 6805.0 || c.High != 6815.0 || c.Low != 6800.0 || c.Close != 6812.0 || c.Volume != 1500 {
		t.Errorf("unexpected candle: %+v", c)
	}
	if !c.Up() {
		t.Error("close above open should be an up candle")
	}
	if candles[2].Up() {
		t.Error("close below open should be a down candle")
	}
	if got := c.Time.Format("15:04"); got != "08:00" {
		t.Errorf("candle time = %s, want 08:00", got)
	}
}

func TestDecodeMissingColumn(t *testing.T) {
	csv := "datetime,open,high,low,close\n2025-12-18 08:00:00,1,2,0,1\n"
	if _, err := Decode(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for missing volume column")
	}
}

func TestDecodeBadValue(t *testing.T) {
	csv := "datetime,open,high,low,close,volume\n2025-12-18 08:00:00,1,2,0,oops,10\n"
	if _, err := Decode(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for unparseable close")
	}
}

func TestFilterSession(t *testing.T) {
	candles, err := Decode(strings.NewReader(sampleCandles))
	if err != nil {
		t.Fatal(err)
	}

	session, err := FilterSession(candles, "08:00", "15:00")
	if err != nil {
		t.Fatal(err)
	}
	// Bounds inclusive: 07:55 and 15:05 drop out.
	if len(session) != 3 {
		t.Fatalf("expected 3 candles in session, got %d", len(session))
	}
	if got := session[0].Time.Format("15:04"); got != "08:00" {
		t.Errorf("first session candle at %s, want 08:00", got)
	}
	if got := session[len(session)-1].Time.Format("15:04"); got != "15:00" {
		t.Errorf("last session candle at %s, want 15:00", got)
	}
}

func TestFilterSessionBadBounds(t *testing.T) {
	if _, err := FilterSession(nil, "8am", "15:00"); err == nil {
		t.Fatal("expected error for bad start time")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := Filename("SPX", 5, "2025-12-18")
	if name != "SPX_5_min_2025-12-18.csv" {
		t.Fatalf("unexpected filename %s", name)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sampleCandles), 0600); err != nil {
		t.Fatal(err)
	}

	candles, err := Load(dir, "SPX", 5, "2025-12-18")
	if err != nil {
		t.Fatal(err)
	}
	if len(candles) != 5 {
		t.Errorf("expected 5 candles, got %d", len(candles))
	}

	if _, err := Load(dir, "NDX", 5, "2025-12-18"); err == nil {
		t.Error("expected error for missing file")
	}
}
