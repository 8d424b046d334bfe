// Package pipeline runs the map tiler end to end: load, detect, render and
// write the layout.
package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/map-tiler/internal/config"
	"github.com/ironsheep/map-tiler/internal/detection"
	"github.com/ironsheep/map-tiler/internal/imaging"
	"github.com/ironsheep/map-tiler/internal/tiles"
)

// Logger records progress messages. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

// AreaStats summarises the areas of all traced contours.
type AreaStats struct {
	Mean float64 `json:"mean"`

	// Median is the empirical 0.5 quantile. For an even number of contours
	// it is the lower of the two middle areas, not their average.
	Median float64 `json:"median"`

	Max float64 `json:"max"`
}

// Detection is the outcome of region detection on one image.
type Detection struct {
	// Contours is the number of external contours traced.
	Contours int

	// Detected is the number of candidates that passed the filter.
	Detected int

	// Fallback is true when Regions came from the fallback grid.
	Fallback bool

	// Regions is the final set in reading order with IDs assigned.
	Regions []detection.Region

	// Areas summarises candidate areas.
	Areas AreaStats
}

// Report summarises a completed run.
type Report struct {
	Detection

	// Tiles lists the tiles written, in reading order.
	Tiles []tiles.Tile

	// Skipped lists the IDs of regions that could not be rendered.
	Skipped []int

	// Layout is the document that was written.
	Layout []tiles.LayoutRecord
}

// Run executes one batch run described by cfg.
//
// A load failure aborts the run before anything is written. A region that
// cannot be rendered is logged and skipped; it gets no layout record. The
// layout document is written once, after every tile.
func Run(cfg *config.Config, logger Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Printf("Loading image from %s...", cfg.Paths.Input)
	img, err := imaging.Load(cfg.Paths.Input)
	if err != nil {
		logger.Printf("Error: Could not load image.")
		return nil, err
	}

	info := imaging.Describe(img)
	logger.Printf("Image shape: (%d, %d, %d)", info.Height, info.Width, info.Channels)

	det, err := Detect(img, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Paths.Layout), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create layout directory: %w", err)
	}

	renderer := tiles.Renderer{
		OutputDir:  cfg.Paths.OutputDir,
		FilePrefix: cfg.Paths.FilePrefix,
		Padding:    cfg.Render.Padding,
	}

	report := &Report{Detection: *det}
	for _, region := range det.Regions {
		tile, err := renderer.Render(img, region)
		if err != nil {
			logger.Printf("Warning: skipped region %02d: %v", region.ID, err)
			report.Skipped = append(report.Skipped, region.ID)
			continue
		}
		report.Tiles = append(report.Tiles, *tile)
		logger.Printf("Saved %s", tile.FileName)
	}

	report.Layout = tiles.BuildLayout(report.Tiles, cfg.Paths.ImageBaseURL)
	if err := tiles.WriteLayout(cfg.Paths.Layout, report.Layout); err != nil {
		return nil, err
	}
	logger.Printf("Saved layout data to %s", cfg.Paths.Layout)

	if cfg.Paths.DebugOverlay != "" {
		if err := writeOverlay(img, det.Regions, cfg.Paths.DebugOverlay); err != nil {
			logger.Printf("Warning: could not write debug overlay: %v", err)
		} else {
			logger.Printf("Saved debug overlay to %s", cfg.Paths.DebugOverlay)
		}
	}

	return report, nil
}

// Detect finds the regions of img and puts them in reading order.
//
// When fewer than cfg.Detection.ExpectedRegions survive filtering, the
// detected regions are discarded and the fallback grid is used instead.
func Detect(img image.Image, cfg *config.Config, logger Logger) (*Detection, error) {
	mask, err := imaging.Preprocess(img, preprocessOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess image: %w", err)
	}

	candidates := detection.ExtractCandidates(mask, detection.ExtractOptions{
		SimplifyRatio: cfg.Detection.SimplifyRatio,
	})
	logger.Printf("Found %d contours. Filtering for hexagons...", len(candidates))
	areas := areaStats(candidates)
	if len(candidates) > 0 {
		logger.Printf("Contour areas: mean=%.1f median=%g max=%g", areas.Mean, areas.Median, areas.Max)
	}
	logCandidates(logger, candidates, cfg.Detection.MinArea)

	regions := detection.FilterCandidates(candidates, filterOptions(cfg))
	logger.Printf("Identified %d potential hexagons.", len(regions))

	det := &Detection{
		Contours: len(candidates),
		Detected: len(regions),
		Areas:    areas,
	}

	if detection.NeedsFallback(regions, cfg.Detection.ExpectedRegions) {
		logger.Printf("Detection failed to find %d hexagons. Generating fallback grid...", cfg.Detection.ExpectedRegions)
		b := img.Bounds()
		regions = detection.FallbackGrid(b.Dx(), b.Dy(), cfg.Fallback.Rows)
		det.Fallback = true
	}

	det.Regions = detection.OrderRegions(regions)
	return det, nil
}

func preprocessOptions(cfg *config.Config) imaging.PreprocessOptions {
	return imaging.PreprocessOptions{
		BlockSize:        cfg.Preprocess.BlockSize,
		Offset:           cfg.Preprocess.Offset,
		MorphRadius:      cfg.Preprocess.MorphRadius,
		CloseIterations:  cfg.Preprocess.CloseIterations,
		DilateIterations: cfg.Preprocess.DilateIterations,
	}
}

func filterOptions(cfg *config.Config) detection.FilterOptions {
	return detection.FilterOptions{
		MinArea:       cfg.Detection.MinArea,
		MinAspect:     cfg.Detection.MinAspect,
		MaxAspect:     cfg.Detection.MaxAspect,
		DedupDistance: cfg.Detection.DedupDistance,
	}
}

// logCandidates writes the ten largest contour areas, then details for the
// first 50 contours large enough to be considered.
func logCandidates(logger Logger, candidates []detection.Candidate, minArea float64) {
	for i, c := range candidates {
		if i >= 10 {
			break
		}
		logger.Printf("Top Contour %d: Area=%g", i, c.Area)
	}
	for i, c := range candidates {
		if i >= 50 {
			break
		}
		if c.Area < minArea {
			continue
		}
		logger.Printf("Contour %d: Area=%g, Vertices=%d, AR=%.2f", i, c.Area, len(c.Polygon), c.AspectRatio())
	}
}

func areaStats(candidates []detection.Candidate) AreaStats {
	if len(candidates) == 0 {
		return AreaStats{}
	}
	areas := make([]float64, len(candidates))
	for i, c := range candidates {
		areas[i] = c.Area
	}
	sort.Float64s(areas)
	return AreaStats{
		Mean:   stat.Mean(areas, nil),
		Median: stat.Quantile(0.5, stat.Empirical, areas, nil),
		Max:    areas[len(areas)-1],
	}
}

func writeOverlay(img image.Image, regions []detection.Region, path string) error {
	shapes := make([]imaging.OverlayShape, 0, len(regions))
	for _, r := range regions {
		var outline []image.Point
		if p, ok := r.Outline.(detection.PolygonOutline); ok {
			outline = p.Points
		}
		shapes = append(shapes, imaging.OverlayShape{
			Label:   fmt.Sprintf("%02d", r.ID),
			Outline: outline,
			Box:     r.Bounds,
		})
	}
	return imaging.Save(imaging.DrawOverlay(img, shapes), path)
}
