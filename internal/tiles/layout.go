package tiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LayoutRecord positions one tile on the front-end map. X and Y are the
// region centre; the front end centres the tile image on that point.
type LayoutRecord struct {
	ID     string `json:"id"`
	Image  string `json:"image"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// BuildLayout creates one record per tile, in tile order. Image references
// are imageBaseURL joined with the tile file name. The base may be a path
// ("/maps/hexes") or an absolute URL ("https://cdn.example.com/hexes").
func BuildLayout(tiles []Tile, imageBaseURL string) []LayoutRecord {
	records := make([]LayoutRecord, 0, len(tiles))
	for _, t := range tiles {
		records = append(records, LayoutRecord{
			ID:     t.Region.Name(),
			Image:  imageRef(imageBaseURL, t.FileName),
			X:      t.Region.Centroid.X,
			Y:      t.Region.Centroid.Y,
			Width:  t.Width(),
			Height: t.Height(),
		})
	}
	return records
}

// imageRef appends name to base with exactly one slash between them. The base
// is otherwise kept as given so a scheme's "//" survives.
func imageRef(base, name string) string {
	if base == "" {
		return name
	}
	return strings.TrimRight(base, "/") + "/" + name
}

// WriteLayout writes records as an indented JSON array to layoutPath.
//
// The document is written to a temporary file in the same directory and then
// renamed, so readers never observe a partially written layout. The parent
// directory is created if needed.
func WriteLayout(layoutPath string, records []LayoutRecord) error {
	if records == nil {
		records = []LayoutRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}

	dir := filepath.Dir(layoutPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".layout-*.json")
	if err != nil {
		return fmt.Errorf("failed to create layout file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if err := os.Rename(tmpPath, layoutPath); err != nil {
		return fmt.Errorf("failed to move layout into place: %w", err)
	}
	return nil
}
