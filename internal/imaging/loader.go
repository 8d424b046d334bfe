package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrEmptyImage is returned when an image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Load reads and decodes the image at path.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, and GIF.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the image format
//     and color model (e.g., *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded, or if it has no pixels.
//
// Load never returns a partially decoded image. Callers are expected to treat
// an error as fatal for the run.
func Load(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("failed to load %s: %w", path, ErrEmptyImage)
	}

	return img, nil
}

// ImageInfo contains metadata about a decoded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Channels is 1 for grayscale images, 4 for images with an alpha
	// channel and 3 otherwise.
	Channels int `json:"channels"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`
}

// Describe returns the dimensions and channel layout of img.
//
// Channel and depth detection is based on the Go image type:
//   - *image.Gray, *image.Gray16 -> 1 channel
//   - *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64 -> 4 channels
//   - All other types -> 3 channels
func Describe(img image.Image) ImageInfo {
	bounds := img.Bounds()

	channels := 3
	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		channels = 4
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		channels = 4
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray:
		channels = 1
	case *image.Gray16:
		channels = 1
		colorDepth = "16-bit"
	}

	return ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Channels:   channels,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
	}
}

// Save encodes img to path, creating the parent directory if needed.
// The format is chosen from the file extension; use ".png" to keep alpha.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
