// Package render builds chart files from the analytics data products.
// It consumes only exposure, volume, series and candle records; no
// computation happens here.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dgnsrekt/gexlab/internal/gex"
)

var (
	callColor = color.NRGBA{R: 70, G: 130, B: 180, A: 210} // steelblue
	putColor  = color.NRGBA{R: 255, G: 165, B: 0, A: 190}  // orange
	netColor  = color.NRGBA{A: 255}
	spotColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	zeroColor = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
)

// GEXProfile renders the per-strike call/put exposure bars with the net
// curve, the spot marker and, when present, the zero-gamma marker.
// The output format follows the file extension (png, svg, pdf...).
func GEXProfile(path string, exposures []gex.StrikeExposure, spot float64, zeroGamma *float64, title string) error {
	if len(exposures) == 0 {
		return fmt.Errorf("no strike exposures to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Strike Price"
	p.Y.Label.Text = "Gamma Exposure ($ per 1pt move)"
	p.X.Tick.Label.Rotation = math.Pi / 4

	calls := make(plotter.Values, len(exposures))
	puts := make(plotter.Values, len(exposures))
	net := make(plotter.XYs, len(exposures))
	for i, e := range exposures {
		calls[i] = e.Call
		puts[i] = e.Put
		net[i] = plotter.XY{X: float64(i), Y: e.Net}
	}

	callBars, err := plotter.NewBarChart(calls, vg.Points(5))
	if err != nil {
		return err
	}
	callBars.Color = callColor
	callBars.LineStyle.Width = 0

	putBars, err := plotter.NewBarChart(puts, vg.Points(5))
	if err != nil {
		return err
	}
	putBars.Color = putColor
	putBars.LineStyle.Width = 0

	netLine, err := plotter.NewLine(net)
	if err != nil {
		return err
	}
	netLine.Color = netColor
	netLine.Width = vg.Points(2)

	p.Add(callBars, putBars, netLine)
	p.Legend.Add("Calls", callBars)
	p.Legend.Add("Puts", putBars)
	p.Legend.Add("Net (Calls - Puts)", netLine)
	p.Legend.Top = true

	ymin, ymax := exposureRange(exposures)
	if v, ok := nominalPosition(exposures, spot); ok {
		vline, err := verticalLine(v, ymin, ymax, spotColor)
		if err != nil {
			return err
		}
		p.Add(vline)
		p.Legend.Add(fmt.Sprintf("Spot %.1f", spot), vline)
	}
	if zeroGamma != nil {
		if v, ok := nominalPosition(exposures, *zeroGamma); ok {
			vline, err := verticalLine(v, ymin, ymax, zeroColor)
			if err != nil {
				return err
			}
			vline.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(vline)
			p.Legend.Add(fmt.Sprintf("Zero Gamma ~%.1f", *zeroGamma), vline)
		}
	}

	p.NominalX(strikeLabels(exposures)...)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// nominalPosition maps a strike value onto the nominal (index-based)
// x axis by linear interpolation between neighboring strikes.
func nominalPosition(exposures []gex.StrikeExposure, strike float64) (float64, bool) {
	n := len(exposures)
	if n == 0 || strike < exposures[0].Strike || strike > exposures[n-1].Strike {
		return 0, false
	}
	for i := 0; i+1 < n; i++ {
		lo, hi := exposures[i].Strike, exposures[i+1].Strike
		if strike >= lo && strike <= hi {
			if hi == lo {
				return float64(i), true
			}
			return float64(i) + (strike-lo)/(hi-lo), true
		}
	}
	return float64(n - 1), true
}

func exposureRange(exposures []gex.StrikeExposure) (ymin, ymax float64) {
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, e := range exposures {
		for _, v := range []float64{e.Call, e.Put, e.Net, 0} {
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
	}
	return ymin, ymax
}

func verticalLine(x, ymin, ymax float64, c color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	return line, nil
}

// strikeLabels thins tick labels when the strike grid is dense.
func strikeLabels(exposures []gex.StrikeExposure) []string {
	labels := make([]string, len(exposures))
	step := 1
	if len(exposures) > 50 {
		step = len(exposures) / 25
	}
	for i, e := range exposures {
		if i%step == 0 {
			labels[i] = fmt.Sprintf("%.0f", e.Strike)
		}
	}
	return labels
}
