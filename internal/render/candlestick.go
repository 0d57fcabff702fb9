package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dgnsrekt/gexlab/internal/candle"
)

// candlesticks draws OHLC candles: a high-low wick with a body between
// open and close, colored by direction. It implements plot.Plotter and
// plot.DataRanger for use on a time x axis (unix seconds).
type candlesticks struct {
	candles []candle.Candle

	// BodyWidth is the candle body width on the canvas.
	BodyWidth vg.Length
	UpColor   color.Color
	DownColor color.Color
	draw.LineStyle
}

func newCandlesticks(cs []candle.Candle, intervalMinutes int) *candlesticks {
	return &candlesticks{
		candles:   cs,
		BodyWidth: vg.Points(float64(intervalMinutes) * 0.8),
		UpColor:   color.NRGBA{G: 150, A: 255},
		DownColor: color.NRGBA{R: 200, A: 255},
		LineStyle: plotter.DefaultLineStyle,
	}
}

func (c *candlesticks) Plot(cnv draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&cnv)

	for _, cd := range c.candles {
		x := trX(float64(cd.Time.Unix()))
		col := c.DownColor
		if cd.Up() {
			col = c.UpColor
		}

		sty := c.LineStyle
		sty.Color = col
		cnv.StrokeLine2(sty, x, trY(cd.Low), x, trY(cd.High))

		top, bottom := trY(cd.Open), trY(cd.Close)
		if bottom > top {
			top, bottom = bottom, top
		}
		half := c.BodyWidth / 2
		cnv.FillPolygon(col, []vg.Point{
			{X: x - half, Y: bottom},
			{X: x + half, Y: bottom},
			{X: x + half, Y: top},
			{X: x - half, Y: top},
		})
	}
}

func (c *candlesticks) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, cd := range c.candles {
		x := float64(cd.Time.Unix())
		xmin = math.Min(xmin, x)
		xmax = math.Max(xmax, x)
		ymin = math.Min(ymin, cd.Low)
		ymax = math.Max(ymax, cd.High)
	}
	return xmin, xmax, ymin, ymax
}

// volumeOverlay draws per-candle volume bars along the bottom fifth of
// the price canvas, the usual sub-axis treatment without a second plot.
type volumeOverlay struct {
	candles []candle.Candle
	Width   vg.Length
	Color   color.Color
}

func (v *volumeOverlay) Plot(cnv draw.Canvas, plt *plot.Plot) {
	var maxVol float64
	for _, cd := range v.candles {
		maxVol = math.Max(maxVol, cd.Volume)
	}
	if maxVol == 0 {
		return
	}

	trX, trY := plt.Transforms(&cnv)
	base := trY(plt.Y.Min)
	span := (trY(plt.Y.Max) - base) / 5

	half := v.Width / 2
	for _, cd := range v.candles {
		x := trX(float64(cd.Time.Unix()))
		h := span * vg.Length(cd.Volume/maxVol)
		cnv.FillPolygon(v.Color, []vg.Point{
			{X: x - half, Y: base},
			{X: x + half, Y: base},
			{X: x + half, Y: base + h},
			{X: x - half, Y: base + h},
		})
	}
}

// CandleChart renders a candlestick price chart with a volume overlay.
func CandleChart(path string, candles []candle.Candle, intervalMinutes int, title string) error {
	if len(candles) == 0 {
		return fmt.Errorf("no candles to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Price"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04"}

	sticks := newCandlesticks(candles, intervalMinutes)
	p.Add(sticks)
	p.Add(&volumeOverlay{
		candles: candles,
		Width:   sticks.BodyWidth,
		Color:   color.NRGBA{R: 120, G: 120, B: 160, A: 90},
	})

	return p.Save(14*vg.Inch, 6*vg.Inch, path)
}
