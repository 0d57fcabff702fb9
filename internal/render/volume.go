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
	volCallColor = color.NRGBA{G: 150, A: 255}
	volPutColor  = color.NRGBA{R: 200, A: 255}
)

// VolumeByStrike renders call/put traded volume bars per strike with a
// spot marker at the closest strike position.
func VolumeByStrike(path string, volumes []gex.StrikeVolume, spot float64, title string) error {
	if len(volumes) == 0 {
		return fmt.Errorf("no strike volumes to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Strike Price"
	p.Y.Label.Text = "Volume"
	p.X.Tick.Label.Rotation = math.Pi / 4

	calls := make(plotter.Values, len(volumes))
	puts := make(plotter.Values, len(volumes))
	labels := make([]string, len(volumes))
	var ymax float64
	for i, v := range volumes {
		calls[i] = v.Call
		puts[i] = v.Put
		labels[i] = fmt.Sprintf("%.0f", v.Strike)
		ymax = math.Max(ymax, math.Max(v.Call, v.Put))
	}

	width := vg.Points(8)
	callBars, err := plotter.NewBarChart(calls, width)
	if err != nil {
		return err
	}
	callBars.Color = volCallColor
	callBars.LineStyle.Width = 0
	callBars.Offset = -width / 2

	putBars, err := plotter.NewBarChart(puts, width)
	if err != nil {
		return err
	}
	putBars.Color = volPutColor
	putBars.LineStyle.Width = 0
	putBars.Offset = width / 2

	p.Add(callBars, putBars)
	p.Legend.Add("Calls", callBars)
	p.Legend.Add("Puts", putBars)
	p.Legend.Top = true

	if i, ok := closestStrike(volumes, spot); ok {
		vline, err := verticalLine(float64(i), 0, ymax, color.NRGBA{A: 255})
		if err != nil {
			return err
		}
		vline.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(vline)
		p.Legend.Add(fmt.Sprintf("Spot %.2f", spot), vline)
	}

	p.NominalX(labels...)

	return p.Save(14*vg.Inch, 8*vg.Inch, path)
}

func closestStrike(volumes []gex.StrikeVolume, spot float64) (int, bool) {
	if len(volumes) == 0 || math.IsNaN(spot) {
		return 0, false
	}
	best, dist := 0, math.Inf(1)
	for i, v := range volumes {
		if d := math.Abs(v.Strike - spot); d < dist {
			best, dist = i, d
		}
	}
	return best, true
}
