package snapshot

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/ohmmeter"
)

func TestSVG_Bands(t *testing.T) {
	// 4.7k: yellow, violet, red
	svg := string(SVG(Resistor{Bands: bands.Decompose(4700)}, Colors))

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `id="band1" x="72" y="16" width="14" height="48" fill="#ffd700"`)
	assert.Contains(t, svg, `id="band2" x="96" y="16" width="14" height="48" fill="#9400d3"`)
	assert.Contains(t, svg, `id="band3" x="120" y="16" width="14" height="48" fill="#dc1414"`)
}

func TestSVG_Open(t *testing.T) {
	svg := string(SVG(Resistor{Open: true}, Colors))

	assert.NotContains(t, svg, "band")
	assert.Contains(t, svg, "#dec496")
}

func TestFromResult(t *testing.T) {
	b := bands.Decompose(10000)
	r := FromResult(ohmmeter.Result{Bands: b})
	assert.Equal(t, Resistor{Bands: b}, r)

	r = FromResult(ohmmeter.Result{OutOfRange: true})
	assert.True(t, r.Open)
}

func TestImage(t *testing.T) {
	img, err := Image(Resistor{Bands: bands.Decompose(4700)}, Colors, ViewWidth, ViewHeight)
	require.NoError(t, err)

	// Middle of the first band
	c := img.RGBAAt(79, 40)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(215), c.G)

	// Corner stays transparent
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
}

func TestImage_InvalidSize(t *testing.T) {
	_, err := Image(Resistor{}, Colors, 0, 10)
	assert.Error(t, err)
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, Resistor{Bands: bands.Decompose(510)}, Colors, 120, 40))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}
