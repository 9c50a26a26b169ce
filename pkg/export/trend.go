// Package export renders a measurement session to images and a PDF report.
package export

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/itohio/goohm/pkg/history"
	"github.com/itohio/goohm/pkg/ohmmeter"
)

// MaxPlotPoints bounds the points drawn per series.
const MaxPlotPoints = 1000

var (
	measuredColor = color.RGBA{R: 255, G: 140, A: 255}
	nominalColor  = color.RGBA{R: 30, G: 110, B: 220, A: 255}
	openColor     = color.RGBA{R: 200, A: 255}
)

// TrendPNG plots resistance over time (seconds since the first result) and
// encodes it as a PNG of width x height points.
func TrendPNG(results []ohmmeter.Result, width, height vg.Length) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Resistance"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Resistance (Ω)"
	p.Add(plotter.NewGrid())

	measured, nominal, open := series(history.Points(results, MaxPlotPoints))

	if len(nominal) > 0 {
		line, err := plotter.NewLine(nominal)
		if err != nil {
			return nil, fmt.Errorf("failed to create nominal line: %w", err)
		}
		line.Color = nominalColor
		line.LineStyle.Width = vg.Points(2)
		line.StepStyle = plotter.PostStep
		p.Add(line)
		p.Legend.Add("Nominal", line)
	}

	if len(measured) > 0 {
		line, err := plotter.NewLine(measured)
		if err != nil {
			return nil, fmt.Errorf("failed to create measured line: %w", err)
		}
		line.Color = measuredColor
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add("Measured", line)
	}

	if len(open) > 0 {
		scatter, err := plotter.NewScatter(open)
		if err != nil {
			return nil, fmt.Errorf("failed to create open markers: %w", err)
		}
		scatter.GlyphStyle.Color = openColor
		scatter.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(scatter)
		p.Legend.Add("Open", scatter)
	}

	p.Legend.Top = true

	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// series splits points into the measured and nominal lines and the open
// markers, which sit at zero.
func series(points []history.Point) (measured, nominal, open plotter.XYs) {
	if len(points) == 0 {
		return nil, nil, nil
	}
	start := points[0].Time
	for _, pt := range points {
		x := pt.Time.Sub(start).Seconds()
		if pt.Open {
			open = append(open, plotter.XY{X: x, Y: 0})
			continue
		}
		measured = append(measured, plotter.XY{X: x, Y: pt.Resistance})
		nominal = append(nominal, plotter.XY{X: x, Y: pt.Nominal})
	}
	return measured, nominal, open
}
