package preprocess

import (
	"image"
	"math"
)

// bilateralFilter smooths scan noise while keeping the register's grid edges
// sharp: each pixel is replaced by a weighted average of its neighborhood
// where the weight falls off with both spatial distance and color distance.
func bilateralFilter(img *image.NRGBA, radius int, sigmaColor, sigmaSpace float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	size := 2*radius + 1
	spatial := make([]float64, size*size)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*size+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}

	// Color weights depend only on the summed channel difference, so they
	// can be tabulated for all 766 possible values.
	colorWeight := make([]float64, 3*255+1)
	for d := range colorWeight {
		colorWeight[d] = math.Exp(-float64(d*d) / (2 * sigmaColor * sigmaColor))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ci := y*img.Stride + x*4
			cr := int(img.Pix[ci])
			cg := int(img.Pix[ci+1])
			cb := int(img.Pix[ci+2])

			var sumR, sumG, sumB, sumW float64
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					ni := ny*img.Stride + nx*4
					nr := int(img.Pix[ni])
					ng := int(img.Pix[ni+1])
					nb := int(img.Pix[ni+2])

					diff := abs(nr-cr) + abs(ng-cg) + abs(nb-cb)
					wgt := spatial[(dy+radius)*size+(dx+radius)] * colorWeight[diff]

					sumR += wgt * float64(nr)
					sumG += wgt * float64(ng)
					sumB += wgt * float64(nb)
					sumW += wgt
				}
			}

			oi := y*out.Stride + x*4
			out.Pix[oi] = uint8(sumR/sumW + 0.5)
			out.Pix[oi+1] = uint8(sumG/sumW + 0.5)
			out.Pix[oi+2] = uint8(sumB/sumW + 0.5)
			out.Pix[oi+3] = img.Pix[ci+3]
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
