package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gonum.org/v1/plot/vg"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/config"
	"github.com/itohio/goohm/pkg/history"
	"github.com/itohio/goohm/pkg/ohmmeter"
	"github.com/itohio/goohm/pkg/report"
	"github.com/itohio/goohm/pkg/snapshot"
)

// ErrEmptySession is returned when there is nothing to report.
var ErrEmptySession = errors.New("no results to export")

const (
	pdfMargin       = 15.0 // mm
	pdfContentWidth = 210.0 - 2*pdfMargin
	lineHeight      = 6.0

	// tableRows is the number of most recent results listed.
	tableRows = 25
)

// Session is what a report covers.
type Session struct {
	Config  *config.Config
	Source  string // Port name or "mock"
	Results []ohmmeter.Result
}

// ohm formats a resistance with the core PDF fonts, which have no Ω glyph.
func ohm(v float32) string {
	return strings.ReplaceAll(report.Ohm(v), "Ω", " ohm")
}

// WritePDF writes an A4 report: the configuration, the last result with its
// resistor snapshot, the trend plot, and a table of the most recent results.
func WritePDF(w io.Writer, s Session) error {
	if len(s.Results) == 0 {
		return ErrEmptySession
	}
	cfg := s.Config
	if cfg == nil {
		cfg = config.Default()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	first := s.Results[0]
	last := s.Results[len(s.Results)-1]
	stats := history.Summarize(s.Results)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pdfContentWidth, 10, "Resistor measurement report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Source: %s", s.Source),
		fmt.Sprintf("Period: %s - %s", first.Timestamp.Format(time.DateTime), last.Timestamp.Format(time.DateTime)),
		fmt.Sprintf("Divider: %s reference, full scale %.0f", ohm(float32(cfg.Divider.KnownResistance)), cfg.Divider.FullScale),
		fmt.Sprintf("Series: E24 %s - %s", ohm(float32(cfg.Series.MinOhm)), ohm(float32(cfg.Series.MaxOhm))),
		fmt.Sprintf("Batch: %d samples", cfg.Sampling.BatchSize),
		fmt.Sprintf("Results: %d, open: %d, min %s, max %s, mean %s",
			stats.Count, stats.Open, ohm(stats.Min), ohm(stats.Max), ohm(stats.Mean)),
	} {
		pdf.CellFormat(pdfContentWidth, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Last result with its snapshot
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(pdfContentWidth, 8, "Last result", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(pdfContentWidth, lineHeight, describe(last), "", 1, "L", false, 0, "")

	var img bytes.Buffer
	if err := snapshot.PNG(&img, snapshot.FromResult(last), snapshot.Colors, snapshot.ViewWidth*2, snapshot.ViewHeight*2); err != nil {
		return err
	}
	y := pdf.GetY() + 2
	pdf.RegisterImageReader("snapshot", "PNG", &img)
	pdf.Image("snapshot", pdfMargin, y, 60, 20, false, "PNG", 0, "")
	pdf.SetY(y + 24)

	// Trend
	trend, err := TrendPNG(s.Results, vg.Points(800), vg.Points(400))
	if err != nil {
		return err
	}
	y = pdf.GetY()
	pdf.RegisterImageReader("trend", "PNG", bytes.NewReader(trend))
	pdf.Image("trend", pdfMargin, y, pdfContentWidth, pdfContentWidth/2, false, "PNG", 0, "")
	pdf.SetY(y + pdfContentWidth/2 + 4)

	writeTable(pdf, s.Results)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// describe is the one line summary of a result.
func describe(r ohmmeter.Result) string {
	if r.OutOfRange {
		return fmt.Sprintf("ADC %.0f: open circuit", r.Reading.Mean)
	}
	labels := r.Bands.Labels()
	return fmt.Sprintf("ADC %.0f: %s measured, %s nominal (%s, %s, %s)",
		r.Reading.Mean, ohm(r.Reading.Resistance), ohm(float32(r.Nominal)),
		labels[0], labels[1], labels[2])
}

// writeTable lists the most recent results, newest last.
func writeTable(pdf *gofpdf.Fpdf, results []ohmmeter.Result) {
	if len(results) > tableRows {
		results = results[len(results)-tableRows:]
	}

	headers := []string{"Time", "ADC", "Measured", "Nominal", "Bands"}
	widths := []float64{35, 20, 35, 35, pdfContentWidth - 125}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for _, r := range results {
		row := []string{
			r.Timestamp.Format(time.TimeOnly),
			fmt.Sprintf("%.0f", r.Reading.Mean),
			ohm(r.Reading.Resistance),
			"-",
			"-",
		}
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
		if r.OutOfRange {
			pdf.SetFont("Arial", "B", 9)
			pdf.SetTextColor(200, 0, 0)
		} else {
			row[3] = ohm(float32(r.Nominal))
			row[4] = bandNames(r.Bands)
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], lineHeight, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)
}

func bandNames(b bands.Bands) string {
	labels := b.Labels()
	return strings.Join(labels[:], " ")
}
