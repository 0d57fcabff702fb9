// Package greeks provides the closed-form Black-Scholes gamma used by
// the exposure pipeline.
package greeks

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Inputs at or below this floor are clamped up to it. Keeps log and
// division terms finite for degenerate quotes (zero DTE, zero vol)
// without turning them into errors.
const epsilon = 1e-12

// NormPDF is the standard normal probability density at x.
func NormPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// Gamma computes Black-Scholes gamma, identical for calls and puts:
//
//	d1 = (ln(s/k) + (r - q + sigma^2/2)*t) / (sigma*sqrt(t))
//	gamma = N'(d1) / (s*sigma*sqrt(t))
//
// s is spot, k strike, t time to expiry in years, sigma implied
// volatility, r the risk-free rate and q the dividend yield. s, k, t
// and sigma are silently floored at epsilon.
func Gamma(s, k, t, sigma, r, q float64) float64 {
	s = math.Max(s, epsilon)
	k = math.Max(k, epsilon)
	t = math.Max(t, epsilon)
	sigma = math.Max(sigma, epsilon)

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r-q+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	return NormPDF(d1) / (s * sigma * sqrtT)
}

// GammaSlice applies Gamma element-wise. All slices must have equal
// length; the result has the same length as s.
func GammaSlice(s, k, t, sigma []float64, r, q float64) []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = Gamma(s[i], k[i], t[i], sigma[i], r, q)
	}
	return out
}
