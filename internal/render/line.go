package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dgnsrekt/gexlab/internal/series"
)

// SeriesLine renders an intraday metric series as a line with point
// markers and a zero reference line, time on the x axis as HH:MM.
func SeriesLine(path string, s series.Series, title, yLabel string) error {
	if len(s) == 0 {
		return fmt.Errorf("no series points to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04"}

	xys := make(plotter.XYs, len(s))
	for i, pt := range s {
		xys[i] = plotter.XY{X: float64(pt.Time.Unix()), Y: pt.Value}
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = color.NRGBA{B: 255, A: 255}
	line.Width = vg.Points(2)
	points.Color = line.Color
	points.Radius = vg.Points(2)

	zero, err := plotter.NewLine(plotter.XYs{
		{X: xys[0].X, Y: 0},
		{X: xys[len(xys)-1].X, Y: 0},
	})
	if err != nil {
		return err
	}
	zero.Color = color.NRGBA{R: 128, G: 128, B: 128, A: 160}

	p.Add(zero, line, points)

	return p.Save(14*vg.Inch, 7*vg.Inch, path)
}
