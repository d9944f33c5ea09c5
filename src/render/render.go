// Package render turns analysis figures into PNG, SVG or PDF bytes.
package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iafilius/LaunchDashboard/src/analysis"
)

// Format is an output image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ErrUnsupportedFormat is returned when a renderer cannot encode the requested format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ParseFormat maps a format name ("png", ".SVG", ...) to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// Chart canvas limits in pixels.
const (
	MinChartWidth  = 800
	MaxChartWidth  = 4096
	MaxChartHeight = 4096
	minAutoHeight  = 280
	maxAutoHeight  = 520
)

// Dimensions sizes a chart canvas for a requested width: the width is kept within
// [MinChartWidth, MaxChartWidth] and the height is a third of it, bounded to [280, 520].
func Dimensions(width int) (int, int) {
	w := min(max(width, MinChartWidth), MaxChartWidth)
	return w, min(max(w/3, minAutoHeight), maxAutoHeight)
}

// Options controls the output size and encoding. Zero Width/Height are derived with Dimensions.
type Options struct {
	Width  int
	Height int
	Format Format
	// NoFootnote suppresses the n=<records> stamp on PNG output.
	NoFootnote bool
}

func (o Options) normalized() Options {
	w, h := Dimensions(o.Width)
	if o.Width > 0 {
		w = min(o.Width, MaxChartWidth)
	}
	if o.Height > 0 {
		h = min(o.Height, MaxChartHeight)
	}
	o.Width, o.Height = w, h
	if o.Format == "" {
		o.Format = FormatPNG
	}
	return o
}

// Render renders fig with the renderer matching its kind.
func Render(fig analysis.Figure, opts Options) ([]byte, error) {
	switch fig.Kind {
	case analysis.KindPie:
		return Pie(fig, opts)
	case analysis.KindScatter:
		return Scatter(fig, opts)
	}
	return nil, fmt.Errorf("%w: %q", analysis.ErrUnknownChart, fig.Kind)
}
