package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/LaunchDashboard/src/analysis"
)

// pixelsPerInch matches the vgimg default so Options sizes come out in pixels.
const pixelsPerInch = 96

func pixels(n int) vg.Length { return vg.Length(n) * vg.Inch / pixelsPerInch }

// outcomeTicks labels only the two outcome values on the Y axis.
var outcomeTicks = plot.ConstantTicks([]plot.Tick{
	{Value: 0, Label: "0"},
	{Value: 1, Label: "1"},
})

// Scatter renders a scatter figure with gonum/plot, one glyph series per booster
// version category. Supported formats: png, svg, pdf.
func Scatter(fig analysis.Figure, opts Options) ([]byte, error) {
	opts = opts.normalized()
	switch opts.Format {
	case FormatPNG, FormatSVG, FormatPDF:
	default:
		return nil, fmt.Errorf("%w: scatter chart as %s", ErrUnsupportedFormat, opts.Format)
	}
	if fig.Empty() && opts.Format != FormatPDF {
		return Blank(opts, fig.Title)
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Y.Min, p.Y.Max = -0.25, 1.25
	p.Y.Tick.Marker = outcomeTicks
	p.X.Min, p.X.Max = xSpan(fig)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range fig.Series {
		pts := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			pts[j].X = pt.X
			pts[j].Y = pt.Y
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("scatter series %q: %w", s.Name, err)
		}
		c := paletteColor(i)
		sc.GlyphStyle.Color = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}
	if fig.Empty() {
		p.Title.Text = fig.Title + " (no data)"
	}

	wt, err := p.WriterTo(pixels(opts.Width), pixels(opts.Height), string(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("scatter writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("scatter encode: %w", err)
	}
	if opts.Format == FormatPNG && !opts.NoFootnote {
		return stampPNG(buf.Bytes(), footnote(fig))
	}
	return buf.Bytes(), nil
}

// xSpan returns the X axis bounds: the requested payload range when present, otherwise the
// extent of the points. A zero-width span is widened so the axis can be drawn.
func xSpan(fig analysis.Figure) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	if fig.Range != nil {
		lo, hi = fig.Range.Low, fig.Range.High
	} else {
		for _, s := range fig.Series {
			for _, pt := range s.Points {
				lo = math.Min(lo, pt.X)
				hi = math.Max(hi, pt.X)
			}
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if hi <= lo {
		pad := math.Max(math.Abs(lo)*0.05, 50)
		lo, hi = math.Max(0, lo-pad), hi+pad
	}
	return lo, hi
}
