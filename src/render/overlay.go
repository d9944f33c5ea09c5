package render

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Blank returns a plain image carrying title and a "no data" caption. PNG and SVG only.
func Blank(opts Options, title string) ([]byte, error) {
	opts = opts.normalized()
	caption := "no data"
	if t := strings.TrimSpace(title); t != "" {
		caption = t + ": no data"
	}
	switch opts.Format {
	case FormatPNG:
		img := blank(opts.Width, opts.Height)
		drawText(img, caption, opts.Width/2-textWidth(caption)/2, opts.Height/2)
		return encodePNG(img)
	case FormatSVG:
		var b strings.Builder
		fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, opts.Width, opts.Height)
		fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#ffffff"/>`)
		fmt.Fprintf(&b, `<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#555555">%s</text>`, html.EscapeString(caption))
		b.WriteString(`</svg>`)
		return []byte(b.String()), nil
	}
	return nil, fmt.Errorf("%w: blank image as %s", ErrUnsupportedFormat, opts.Format)
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func textWidth(text string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(text).Ceil()
}

// drawText writes text at baseline (x, y) in dark grey.
func drawText(dst draw.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 85, G: 85, B: 85, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// stampPNG draws a small footnote near the bottom-left corner of an encoded PNG.
func stampPNG(data []byte, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return data, nil
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	b := src.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, src, b.Min, draw.Src)

	x, y := footnoteOrigin(b)
	bg := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 220})
	draw.Draw(rgba, footnoteRect(b, text), bg, image.Point{}, draw.Over)
	drawText(rgba, text, x, y)
	return encodePNG(rgba)
}

// footnoteOrigin is the baseline start of the footnote text within b.
func footnoteOrigin(b image.Rectangle) (int, int) {
	return b.Min.X + 8, b.Max.Y - 6
}

// footnoteRect is the translucent box drawn behind the footnote text.
func footnoteRect(b image.Rectangle, text string) image.Rectangle {
	const pad = 4
	x, y := footnoteOrigin(b)
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
	return image.Rect(x-pad, y-ascent-pad, x+textWidth(text)+pad, y+pad/2)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
