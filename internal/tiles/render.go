// Package tiles renders map regions to transparent PNG tiles and writes the
// layout document that positions them.
package tiles

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/ironsheep/map-tiler/internal/detection"
	"github.com/ironsheep/map-tiler/internal/imaging"
)

// Tile is a rendered region.
type Tile struct {
	// Region is the region the tile was cut from.
	Region detection.Region

	// FileName is the base name of the written PNG, e.g. "hex_03.png".
	FileName string

	// Path is the full path of the written PNG.
	Path string

	// Crop is the padded rectangle cut from the source image.
	Crop image.Rectangle
}

// Width returns the tile width in pixels.
func (t Tile) Width() int { return t.Crop.Dx() }

// Height returns the tile height in pixels.
func (t Tile) Height() int { return t.Crop.Dy() }

// Renderer cuts regions out of a source image.
type Renderer struct {
	// OutputDir is the directory tiles are written to.
	OutputDir string

	// FilePrefix starts every tile file name.
	FilePrefix string

	// Padding is added to every side of a region's bounding box before
	// clamping to the image.
	Padding int
}

// FileName returns the tile file name for a sequence number, zero-padded to
// two digits.
func (r Renderer) FileName(id int) string {
	return fmt.Sprintf("%s_%02d.png", r.FilePrefix, id)
}

// Compose builds the tile image for region without writing it.
//
// The crop is the region's bounding box grown by Padding and clamped to the
// source bounds. Traced regions are masked to their outline, fallback
// rectangles are fully opaque.
//
// Returns imaging.ErrEmptyCrop if the padded box does not overlap the image.
func (r Renderer) Compose(src image.Image, region detection.Region) (*image.NRGBA, image.Rectangle, error) {
	crop := imaging.PadRect(region.Bounds, r.Padding, src.Bounds())
	if crop.Empty() {
		return nil, crop, fmt.Errorf("region %d: %w", region.ID, imaging.ErrEmptyCrop)
	}

	var mask *image.Alpha
	switch o := region.Outline.(type) {
	case detection.PolygonOutline:
		mask = imaging.PolygonMask(crop.Size(), o.Points, crop.Min)
	case detection.RectOutline:
		mask = imaging.OpaqueMask(crop.Size())
	default:
		return nil, crop, fmt.Errorf("region %d: unsupported outline %T", region.ID, region.Outline)
	}

	tile, err := imaging.CropMasked(src, crop, mask)
	if err != nil {
		return nil, crop, fmt.Errorf("region %d: %w", region.ID, err)
	}
	return tile, crop, nil
}

// Render composes the tile for region and writes it to OutputDir.
func (r Renderer) Render(src image.Image, region detection.Region) (*Tile, error) {
	img, crop, err := r.Compose(src, region)
	if err != nil {
		return nil, err
	}

	name := r.FileName(region.ID)
	path := filepath.Join(r.OutputDir, name)
	if err := imaging.Save(img, path); err != nil {
		return nil, fmt.Errorf("region %d: %w", region.ID, err)
	}

	return &Tile{
		Region:   region,
		FileName: name,
		Path:     path,
		Crop:     crop,
	}, nil
}
