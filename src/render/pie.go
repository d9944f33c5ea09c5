package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/LaunchDashboard/src/analysis"
	"github.com/iafilius/LaunchDashboard/src/logging"
)

var (
	colorFailure = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	colorSuccess = drawing.Color{R: 44, G: 160, B: 44, A: 255}
)

// palette is used for per-site slices and scatter series, in order.
var palette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
}

func paletteColor(i int) drawing.Color { return palette[i%len(palette)] }

// Pie layout: the title sits in a band above the padded box the pie is drawn in.
const (
	pieTitleBand   = 44
	pieTitleBase   = 28
	pieTitleSize   = 14
	pieSidePad     = 16
	pieBottomPad   = 24
	pieLabelSize   = 12
	pieStrokeWidth = 1
)

func piePadding() chart.Box {
	return chart.Box{Top: pieTitleBand, Left: pieSidePad, Right: pieSidePad, Bottom: pieBottomPad}
}

// pieLayout returns the centre and radius of the pie for a w x h canvas.
func pieLayout(w, h int) (cx, cy int, radius float64) {
	left, top, right, bottom := pieSidePad, pieTitleBand, w-pieSidePad, h-pieBottomPad
	cx, cy = (left+right)/2, (top+bottom)/2
	radius = float64(min(right-left, bottom-top)) / 2
	return cx, cy, radius
}

// Pie renders a pie figure with go-chart. Supported formats: png, svg.
func Pie(fig analysis.Figure, opts Options) ([]byte, error) {
	opts = opts.normalized()
	var provider chart.RendererProvider
	switch opts.Format {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return nil, fmt.Errorf("%w: pie chart as %s", ErrUnsupportedFormat, opts.Format)
	}
	if fig.Empty() {
		return Blank(opts, fig.Title)
	}

	values := make([]chart.Value, 0, len(fig.Slices))
	for i, s := range fig.Slices {
		// go-chart lays out zero slices on top of their neighbours.
		if s.Value <= 0 {
			continue
		}
		col := paletteColor(i)
		label := s.Label
		if !fig.BySite {
			col = colorFailure
			if s.Label == "1" {
				col = colorSuccess
			}
			label = analysis.OutcomeLabel(s.Label)
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.0f)", label, s.Value),
			Value: s.Value,
			Style: chart.Style{FillColor: col, StrokeColor: drawing.ColorWhite, StrokeWidth: pieStrokeWidth},
		})
	}

	var buf bytes.Buffer
	var err error
	if len(values) == 1 {
		// go-chart ignores the value style when there is a single slice.
		err = renderFullPie(provider, &buf, fig.Title, values[0], opts)
	} else {
		pie := chart.PieChart{
			Width:      opts.Width,
			Height:     opts.Height,
			Background: chart.Style{Padding: piePadding()},
			Values:     values,
			Elements:   []chart.Renderable{pieTitle(fig.Title, opts.Width)},
		}
		err = pie.Render(provider, &buf)
	}
	if err != nil {
		logging.Warnf("pie render error: %v; showing blank fallback", err)
		return Blank(opts, fig.Title)
	}
	if opts.Format == FormatPNG && !opts.NoFootnote {
		return stampPNG(buf.Bytes(), footnote(fig))
	}
	return buf.Bytes(), nil
}

// pieTitle draws the title centred in the band above the pie.
func pieTitle(title string, width int) chart.Renderable {
	return func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
		if title == "" {
			return
		}
		font := defaults.Font
		if font == nil {
			f, err := chart.GetDefaultFont()
			if err != nil {
				return
			}
			font = f
		}
		r.SetFont(font)
		r.SetFontSize(pieTitleSize)
		r.SetFontColor(drawing.ColorBlack)
		tb := r.MeasureText(title)
		r.Text(title, width/2-tb.Width()/2, pieTitleBase)
	}
}

// renderFullPie draws a single value as a filled disc with its label.
func renderFullPie(provider chart.RendererProvider, w io.Writer, title string, v chart.Value, opts Options) error {
	r, err := provider(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(opts.Width, 0)
	r.LineTo(opts.Width, opts.Height)
	r.LineTo(0, opts.Height)
	r.LineTo(0, 0)
	r.Close()
	r.Fill()

	cx, cy, radius := pieLayout(opts.Width, opts.Height)
	r.SetFillColor(v.Style.FillColor)
	r.SetStrokeColor(drawing.ColorWhite)
	r.SetStrokeWidth(pieStrokeWidth)
	r.Circle(radius, cx, cy)
	r.FillStroke()

	r.SetFont(font)
	r.SetFontSize(pieLabelSize)
	r.SetFontColor(drawing.ColorWhite)
	tb := r.MeasureText(v.Label)
	r.Text(v.Label, cx-tb.Width()/2, cy+int(radius/2))

	pieTitle(title, opts.Width)(r, chart.Box{}, chart.Style{Font: font})
	return r.Save(w)
}

func footnote(fig analysis.Figure) string {
	return fmt.Sprintf("n=%d", fig.Total)
}
