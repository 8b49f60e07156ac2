package preprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestBilateralFilter_PreservesUniformRegions(t *testing.T) {
	img := uniform(64, 32, color.NRGBA{R: 180, G: 180, B: 180, A: 255})
	out := bilateralFilter(img, 4, 75, 75)

	require.Equal(t, img.Bounds(), out.Bounds())
	for _, pt := range []image.Point{{X: 0, Y: 0}, {X: 32, Y: 16}, {X: 63, Y: 31}} {
		assert.Equal(t, img.NRGBAAt(pt.X, pt.Y), out.NRGBAAt(pt.X, pt.Y))
	}
}

func TestBilateralFilter_SmoothsSpeckleNoise(t *testing.T) {
	img := uniform(33, 33, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	img.SetNRGBA(16, 16, color.NRGBA{R: 190, G: 190, B: 190, A: 255})

	out := bilateralFilter(img, 4, 75, 75)
	center := out.NRGBAAt(16, 16)
	// The small deviation gets pulled toward its neighborhood.
	assert.Greater(t, center.R, uint8(190))
}

func TestBilateralFilter_KeepsStrongEdges(t *testing.T) {
	img := uniform(40, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}

	out := bilateralFilter(img, 4, 75, 75)
	// Far from the boundary both sides keep their levels.
	assert.Greater(t, out.NRGBAAt(5, 10).R, uint8(240))
	assert.Less(t, out.NRGBAAt(35, 10).R, uint8(15))
}

func TestEqualizeLuminance_PreservesDimensions(t *testing.T) {
	img := uniform(64, 48, color.NRGBA{R: 120, G: 140, B: 90, A: 255})
	out := equalizeLuminance(img)
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func TestEqualizeLuminance_SpreadsCompressedContrast(t *testing.T) {
	// A low-contrast gradient page: values packed into [100, 120].
	img := image.NewNRGBA(image.Rect(0, 0, 128, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x++ {
			v := uint8(100 + (20*x)/128)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	out := equalizeLuminance(img)
	require.Equal(t, img.Bounds(), out.Bounds())

	spread := func(im *image.NRGBA) int {
		lo, hi := 255, 0
		for y := 0; y < 64; y++ {
			for x := 0; x < 128; x++ {
				v := int(im.NRGBAAt(x, y).R)
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
		return hi - lo
	}
	assert.Greater(t, spread(out), spread(img))
}

func TestEqualizeLuminance_RoundTripsThroughImaging(t *testing.T) {
	img := imaging.New(32, 32, color.White)
	out := equalizeLuminance(img)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 32, out.Bounds().Dy())
}
