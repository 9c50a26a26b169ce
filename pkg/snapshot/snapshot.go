// Package snapshot draws a resistor with its color bands as SVG and
// rasterizes it to PNG.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/ohmmeter"
)

// Canvas size of the SVG drawing.
const (
	ViewWidth  = 240
	ViewHeight = 80
)

// Colors are the printed band colors, unlike the dim LED drive values.
var Colors = bands.Palette{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 139, G: 69, B: 19, A: 255},
	{R: 220, G: 20, B: 20, A: 255},
	{R: 255, G: 140, B: 0, A: 255},
	{R: 255, G: 215, B: 0, A: 255},
	{R: 34, G: 139, B: 34, A: 255},
	{R: 30, G: 60, B: 220, A: 255},
	{R: 148, G: 0, B: 211, A: 255},
	{R: 128, G: 128, B: 128, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

var (
	bodyColor = color.RGBA{R: 222, G: 196, B: 150, A: 255}
	leadColor = color.RGBA{R: 170, G: 170, B: 170, A: 255}
)

// bandX are the left edges of the first digit, second digit and multiplier bands.
var bandX = [3]int{72, 96, 120}

const bandWidth = 14

// Resistor is what a snapshot shows. An open resistor has no bands.
type Resistor struct {
	Bands bands.Bands
	Open  bool
}

// FromResult takes the bands of a measurement.
func FromResult(r ohmmeter.Result) Resistor {
	return Resistor{Bands: r.Bands, Open: r.OutOfRange}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SVG draws the resistor body, its leads and the three bands.
func SVG(r Resistor, p bands.Palette) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		ViewWidth, ViewHeight, ViewWidth, ViewHeight)
	fmt.Fprintf(&b, `<rect x="0" y="36" width="%d" height="8" fill="%s"/>`+"\n", ViewWidth, hex(leadColor))
	fmt.Fprintf(&b, `<rect x="50" y="16" width="140" height="48" rx="18" ry="18" fill="%s"/>`+"\n", hex(bodyColor))

	if !r.Open {
		digits := [3]uint8{r.Bands.Digit1, r.Bands.Digit2, r.Bands.Exponent}
		for i, d := range digits {
			fmt.Fprintf(&b, `<rect id="band%d" x="%d" y="16" width="%d" height="48" fill="%s"/>`+"\n",
				i+1, bandX[i], bandWidth, hex(p.Color(d)))
		}
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}

// Image rasterizes the resistor at width x height pixels on a transparent background.
func Image(r Resistor, p bands.Palette, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(SVG(r, p)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse resistor svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	return img, nil
}

// PNG writes the rasterized resistor as a PNG image.
func PNG(w io.Writer, r Resistor, p bands.Palette, width, height int) error {
	img, err := Image(r, p, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
