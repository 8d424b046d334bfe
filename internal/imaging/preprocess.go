package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// PreprocessOptions controls how an illustration is reduced to a binary mask.
type PreprocessOptions struct {
	// BlockSize is the side of the square neighbourhood used to compute the
	// local threshold. Must be odd and at least 3.
	BlockSize int

	// Offset is subtracted from the local weighted mean. A pixel is
	// foreground when its smoothed value is at or below mean - Offset.
	Offset float64

	// MorphRadius is the radius of the square structuring element used for
	// closing and dilation. Radius 2 is a 5x5 element.
	MorphRadius int

	// CloseIterations is the number of dilate passes followed by the same
	// number of erode passes.
	CloseIterations int

	// DilateIterations is the number of extra dilate passes applied after
	// closing so that neighbouring outline segments join into loops.
	DilateIterations int
}

// DefaultPreprocessOptions returns the options tuned for outlined hexagonal
// maps on a roughly uniform background.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		BlockSize:        11,
		Offset:           2,
		MorphRadius:      2,
		CloseIterations:  3,
		DilateIterations: 1,
	}
}

// Validate reports whether the options can be used by Preprocess.
func (o PreprocessOptions) Validate() error {
	if o.BlockSize < 3 || o.BlockSize%2 == 0 {
		return fmt.Errorf("block size must be odd and >= 3, got %d", o.BlockSize)
	}
	if o.MorphRadius < 0 {
		return fmt.Errorf("morph radius must be >= 0, got %d", o.MorphRadius)
	}
	if o.CloseIterations < 0 || o.DilateIterations < 0 {
		return fmt.Errorf("iterations must be >= 0, got close=%d dilate=%d",
			o.CloseIterations, o.DilateIterations)
	}
	return nil
}

// Preprocess converts an illustration into a binary mask of its outlines.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - opts: Threshold and morphology settings. See DefaultPreprocessOptions.
//
// Returns:
//   - *image.Gray: Mask with the same size as img, origin (0,0). Ink is 255,
//     everything else is 0.
//   - error: Non-nil if the options are invalid or img has no pixels.
//
// # Algorithm
//
//  1. Grayscale conversion using ITU-R BT.601 weights
//     (0.299*R + 0.587*G + 0.114*B)
//
//  2. Gaussian blur: fixed 5x5 kernel to suppress compression noise
//
//  3. Adaptive threshold: each pixel is compared with the Gaussian-weighted
//     mean of its BlockSize x BlockSize neighbourhood. Pixels darker than
//     mean - Offset become foreground, so uneven paper tone and shading do
//     not swamp the outlines.
//
//  4. Closing: CloseIterations dilations followed by CloseIterations
//     erosions with a square element bridge small gaps in hand-drawn lines.
//
//  5. Dilation: DilateIterations extra passes connect adjacent segments.
//
// A blank image produces an all-zero mask.
func Preprocess(img image.Image, opts PreprocessOptions) (*image.Gray, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	gray := imaging.Grayscale(img)

	rounding := &convolution.Options{Bias: 0.5, KeepAlpha: true}
	smoothed := convolution.Convolve(gray, smoothingKernel(), rounding)
	mean := convolution.Convolve(smoothed, gaussianKernel(opts.BlockSize), rounding)

	mask := adaptiveThreshold(smoothed, mean, opts.Offset)
	return closeGaps(mask, opts), nil
}

// smoothingKernel returns the normalised 5x5 Gaussian kernel with sigma ≈ 1.4:
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
//
// Total kernel sum = 273.
func smoothingKernel() convolution.Matrix {
	weights := []float64{
		1, 4, 7, 4, 1,
		4, 16, 26, 16, 4,
		7, 26, 41, 26, 7,
		4, 16, 26, 16, 4,
		1, 4, 7, 4, 1,
	}
	k := convolution.NewKernel(5, 5)
	copy(k.Matrix, weights)
	return k.Normalized()
}

// gaussianKernel builds a normalised size x size Gaussian weight window.
// Sigma follows the usual derivation from the window size:
// 0.3*((size-1)*0.5 - 1) + 0.8.
func gaussianKernel(size int) convolution.Matrix {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	radius := size / 2
	k := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x - radius)
			dy := float64(y - radius)
			k.Matrix[y*k.Width+x] = math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
		}
	}
	return k.Normalized()
}

// adaptiveThreshold marks pixels of src that are at least offset darker than
// the matching pixel of mean. Both inputs are single-valued gray stored in RGBA.
func adaptiveThreshold(src, mean *image.RGBA, offset float64) *image.Gray {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	mask := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float64(src.Pix[src.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)])
			m := float64(mean.Pix[mean.PixOffset(x+mean.Rect.Min.X, y+mean.Rect.Min.Y)])
			if v <= m-offset {
				mask.Pix[mask.PixOffset(x, y)] = 255
			}
		}
	}
	return mask
}

// closeGaps applies closing followed by dilation and re-binarises the result.
func closeGaps(mask *image.Gray, opts PreprocessOptions) *image.Gray {
	if opts.MorphRadius == 0 {
		return mask
	}
	radius := float64(opts.MorphRadius)

	var current image.Image = mask
	for i := 0; i < opts.CloseIterations; i++ {
		current = effect.Dilate(current, radius)
	}
	for i := 0; i < opts.CloseIterations; i++ {
		current = effect.Erode(current, radius)
	}
	for i := 0; i < opts.DilateIterations; i++ {
		current = effect.Dilate(current, radius)
	}

	return binarize(current)
}

// binarize converts any image to a 0/255 mask with origin (0,0).
func binarize(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			if g.Y >= 128 {
				out.Pix[out.PixOffset(x, y)] = 255
			}
		}
	}
	return out
}
