package preprocess

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

const (
	// Only lines within this many degrees of horizontal take part in the
	// skew estimate; steeper segments are column rules or handwriting.
	deskewMaxAngleDeg = 30.0

	// Rotations below this magnitude are skipped: re-sampling an already
	// straight scan only introduces blur.
	deskewNoiseFloorDeg = 0.5

	houghVoteThreshold = 100
	edgeGradThreshold  = 100
)

// deskew straightens the image by the median angle of its near-horizontal
// edge lines. If no qualifying lines exist the image is returned unchanged.
func deskew(img *image.NRGBA) *image.NRGBA {
	angles := nearHorizontalLineAngles(img)
	if len(angles) == 0 {
		return img
	}

	sort.Float64s(angles)
	angle := median(angles)
	if math.Abs(angle) < deskewNoiseFloorDeg {
		return img
	}
	return imaging.Rotate(img, angle, color.White)
}

// nearHorizontalLineAngles runs a Hough transform over the image's edge
// pixels, restricted to line normals within deskewMaxAngleDeg of vertical,
// i.e. lines within that many degrees of horizontal. It returns the angle
// (degrees from horizontal) of every line whose accumulator cell clears the
// vote threshold.
func nearHorizontalLineAngles(img *image.NRGBA) []float64 {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return nil
	}

	lum := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = int(gray.Pix[y*gray.Stride+x*4])
		}
	}

	// Normal angle theta in [90-max, 90+max] degrees, 1 degree resolution.
	thetaMin := 90 - int(deskewMaxAngleDeg)
	thetaCount := 2*int(deskewMaxAngleDeg) + 1
	sin := make([]float64, thetaCount)
	cos := make([]float64, thetaCount)
	for i := 0; i < thetaCount; i++ {
		rad := float64(thetaMin+i) * math.Pi / 180
		sin[i] = math.Sin(rad)
		cos[i] = math.Cos(rad)
	}

	maxRho := int(math.Hypot(float64(w), float64(h))) + 1
	acc := make([]int, thetaCount*(2*maxRho))

	// Sobel gradient magnitude as the edge test.
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -lum[(y-1)*w+x-1] + lum[(y-1)*w+x+1] +
				-2*lum[y*w+x-1] + 2*lum[y*w+x+1] +
				-lum[(y+1)*w+x-1] + lum[(y+1)*w+x+1]
			gy := -lum[(y-1)*w+x-1] - 2*lum[(y-1)*w+x] - lum[(y-1)*w+x+1] +
				lum[(y+1)*w+x-1] + 2*lum[(y+1)*w+x] + lum[(y+1)*w+x+1]
			if gx*gx+gy*gy < edgeGradThreshold*edgeGradThreshold {
				continue
			}
			for i := 0; i < thetaCount; i++ {
				rho := int(float64(x)*cos[i]+float64(y)*sin[i]) + maxRho
				acc[i*2*maxRho+rho]++
			}
		}
	}

	var angles []float64
	for i := 0; i < thetaCount; i++ {
		for r := 0; r < 2*maxRho; r++ {
			if acc[i*2*maxRho+r] >= houghVoteThreshold {
				// A line whose normal sits at theta lies at theta-90 from
				// the horizontal axis.
				angles = append(angles, float64(thetaMin+i)-90)
			}
		}
	}
	return angles
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
