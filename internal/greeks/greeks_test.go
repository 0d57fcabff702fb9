package greeks

import (
	"math"
	"testing"
)

func TestGammaKnownValue(t *testing.T) {
	// s=k=100, t=0.25, sigma=0.2: d1=0.05, gamma=pdf(0.05)/10
	got := Gamma(100, 100, 0.25, 0.2, 0, 0)
	want := 0.03984437
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("Gamma(100,100,0.25,0.2) = %v, want %v", got, want)
	}
}

func TestGammaPeaksAtTheMoney(t *testing.T) {
	const (
		s     = 100.0
		tte   = 0.1
		sigma = 0.25
	)
	atm := Gamma(s, s, tte, sigma, 0, 0)
	if atm <= 0 {
		t.Fatalf("ATM gamma should be positive, got %v", atm)
	}
	for _, k := range []float64{85, 92, 96, 104, 108, 115} {
		if g := Gamma(s, k, tte, sigma, 0, 0); g >= atm {
			t.Errorf("gamma at k=%v (%v) should be below ATM gamma (%v)", k, g, atm)
		}
	}
}

func TestGammaEpsilonFloor(t *testing.T) {
	tests := []struct {
		name             string
		s, k, tte, sigma float64
	}{
		{"zero time", 100, 100, 0, 0.2},
		{"zero vol", 100, 100, 0.25, 0},
		{"zero spot", 0, 100, 0.25, 0.2},
		{"zero strike", 100, 0, 0.25, 0.2},
		{"negative time", 100, 100, -1, 0.2},
		{"all degenerate", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gamma(tt.s, tt.k, tt.tte, tt.sigma, 0, 0)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("Gamma(%v,%v,%v,%v) = %v, want finite", tt.s, tt.k, tt.tte, tt.sigma, got)
			}
		})
	}
}

func TestGammaSlice(t *testing.T) {
	s := []float64{100, 100}
	k := []float64{100, 110}
	tte := []float64{0.25, 0.25}
	sigma := []float64{0.2, 0.2}

	got := GammaSlice(s, k, tte, sigma, 0, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	for i := range got {
		want := Gamma(s[i], k[i], tte[i], sigma[i], 0, 0)
		if got[i] != want {
			t.Errorf("element %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestNormPDF(t *testing.T) {
	if got, want := NormPDF(0), 1/math.Sqrt(2*math.Pi); math.Abs(got-want) > 1e-12 {
		t.Errorf("NormPDF(0) = %v, want %v", got, want)
	}
}
