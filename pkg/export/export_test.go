package export

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/config"
	"github.com/itohio/goohm/pkg/eseries"
	"github.com/itohio/goohm/pkg/history"
	"github.com/itohio/goohm/pkg/measure"
	"github.com/itohio/goohm/pkg/ohmmeter"
)

func session(n int) []ohmmeter.Result {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	results := make([]ohmmeter.Result, 0, n)
	for i := range n {
		at := now.Add(time.Duration(i) * 500 * time.Millisecond)
		if i%7 == 6 {
			results = append(results, ohmmeter.Result{
				Timestamp:  at,
				Reading:    measure.Reading{Mean: 4095},
				OutOfRange: true,
			})
			continue
		}
		results = append(results, ohmmeter.Result{
			Timestamp: at,
			Reading:   measure.Reading{Mean: 1309, Resistance: 4698 + float32(i%3)},
			Nominal:   eseries.Value(4700),
			Bands:     bands.Decompose(4700),
		})
	}
	return results
}

func TestSeries(t *testing.T) {
	measured, nominal, open := series(history.Points(session(7), 0))

	assert.Equal(t, 6, len(measured))
	assert.Equal(t, 6, len(nominal))
	require.Equal(t, 1, len(open))

	assert.Equal(t, 0.0, measured[0].X)
	assert.Equal(t, 4698.0, measured[0].Y)
	assert.Equal(t, 4700.0, nominal[0].Y)
	assert.Equal(t, 3.0, open[0].X)
	assert.Equal(t, 0.0, open[0].Y)
}

func TestSeries_Empty(t *testing.T) {
	measured, nominal, open := series(nil)
	assert.Nil(t, measured)
	assert.Nil(t, nominal)
	assert.Nil(t, open)
}

func TestTrendPNG(t *testing.T) {
	data, err := TrendPNG(session(40), vg.Points(400), vg.Points(200))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, Session{
		Config:  config.Default(),
		Source:  "mock",
		Results: session(60),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WritePDF(&buf, Session{}), ErrEmptySession)
	assert.Zero(t, buf.Len())
}

func TestDescribe(t *testing.T) {
	results := session(7)

	assert.Equal(t, "ADC 1309: 4.7k ohm measured, 4.7k ohm nominal (Yellow, Violet, Red)", describe(results[0]))
	assert.Equal(t, "ADC 4095: open circuit", describe(results[6]))
}
